package service

import (
	"context"
	"io"

	"clubhub/internal/domain"
	"clubhub/internal/dto"
)

// PosterUpload is an image attached to an event submission.
type PosterUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type EventService interface {
	// CreateEvent returns the stored event with its poster resolved against baseURL.
	CreateEvent(ctx context.Context, actor domain.Principal, r dto.CreateEventRequest, poster *PosterUpload, baseURL string) (*dto.EventView, error)
	ListEvents(ctx context.Context, baseURL string) ([]dto.EventView, error)
}
