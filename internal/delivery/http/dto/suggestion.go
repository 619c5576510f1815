package dto

type SuggestionRequest struct {
	Skills []string `json:"skills"`
}

type SuggestionResponse struct {
	Suggestions []string `json:"suggestions"`
}

type CategorizeRequest struct {
	Name string `json:"name"`
}

type CategorizeResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}
