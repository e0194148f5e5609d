package dto

type Filter struct {
	Page     uint64 `query:"page"`
	Limit    uint64 `query:"limit"`
	Category string `query:"category"`
	Brand    string `query:"brand"`
	Search   string `query:"q"`
}
