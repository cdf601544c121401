package transport

import "time"

type LoginRequest struct {
	Username string `json:"username" validate:"notblank,min=3,max=50,username"`
	Password string `json:"password" validate:"notblank,min=6,max=100,letterdigit"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
}

// ProductRequest carries every mutable product field; updates replace all of them.
type ProductRequest struct {
	Name        string  `json:"name"        validate:"notblank,min=3,max=100"`
	Price       *int    `json:"price"       validate:"required,min=1,max=999999999"`
	Quantity    *int    `json:"quantity"    validate:"required,min=0,max=99999"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Category    string  `json:"category"    validate:"notblank"`
}

type ApiError struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Errors    []string  `json:"errors,omitempty"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

func NewPageMeta(page, size int, total int64) PageMeta {
	meta := PageMeta{Page: page, Size: size, Total: total, HasPrev: page > 1}
	if size > 0 {
		meta.TotalPages = (total + int64(size) - 1) / int64(size)
		meta.HasNext = int64(page) < meta.TotalPages
	}
	return meta
}
