package api

import (
	"github.com/lysyi3m/turbo-items/app/store"
)

type Handler struct {
	store   store.Reader
	feedURL string
	version string
}

type errorResponse struct {
	Error string `json:"error"`
}
