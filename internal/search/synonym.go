package search

// Aliases lists spelling variants by canonical root. Keys and values are
// already normalised.
var Aliases = map[string][]string{
	"go":               {"golang"},
	"javascript":       {"js", "ecmascript"},
	"typescript":       {"ts"},
	"postgresql":       {"postgres", "psql"},
	"kubernetes":       {"k8s", "kube"},
	"nodejs":           {"node", "node js"},
	"react":            {"reactjs", "react js"},
	"vue":              {"vuejs", "vue js"},
	"python":           {"py"},
	"c#":               {"csharp", "c sharp"},
	"c++":              {"cpp", "cplusplus"},
	"machine learning": {"ml"},
}

var aliasRoot = buildAliasRoot()

func buildAliasRoot() map[string]string {
	out := make(map[string]string, len(Aliases)*3)
	for root, variants := range Aliases {
		out[root] = root
		for _, v := range variants {
			out[v] = root
		}
	}
	return out
}

// GetAliases returns the variants recorded for a canonical root.
func GetAliases(root string) []string {
	v, ok := Aliases[root]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(v))
	return append(out, v...)
}
