package records

import (
	"context"

	"github.com/MrJamesThe3rd/deskboard/internal/fakeapi"
)

type pagedResponse struct {
	Success    bool             `json:"success"`
	Data       []fakeapi.Record `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

type dataResponse struct {
	Success bool   `json:"success,omitempty"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success     bool              `json:"success"`
	Error       string            `json:"error"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

func toListResponse(cfg fakeapi.Config, page fakeapi.Page) any {
	switch cfg.Shape {
	case fakeapi.ShapePaged:
		total := page.Total
		if cfg.UnderReportTotal {
			total = len(page.Records)
		}

		return pagedResponse{
			Success:    true,
			Data:       page.Records,
			Total:      total,
			Page:       page.Page,
			TotalPages: page.Pages,
		}
	case fakeapi.ShapeData:
		return dataResponse{Data: page.Records}
	default:
		return page.Records
	}
}

func toDetailResponse(cfg fakeapi.Config, rec fakeapi.Record) any {
	switch cfg.Shape {
	case fakeapi.ShapePaged:
		return dataResponse{Success: true, Data: rec}
	case fakeapi.ShapeData:
		return dataResponse{Data: rec}
	default:
		return rec
	}
}

func toMutationResponse(cfg fakeapi.Config, rec fakeapi.Record, msg string) any {
	if cfg.Shape == fakeapi.ShapeBare {
		return rec
	}

	return dataResponse{Success: true, Data: rec, Message: msg}
}

func withConfig(ctx context.Context, cfg fakeapi.Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

func configFrom(ctx context.Context) fakeapi.Config {
	cfg, _ := ctx.Value(ctxKey{}).(fakeapi.Config)
	return cfg
}
