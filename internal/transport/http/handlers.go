package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"clubhub/internal/domain"
	"clubhub/internal/dto"
	"clubhub/internal/netutil"
	"clubhub/internal/observability/middleware"
	"clubhub/internal/service"
)

// multipart parts above this size spill to temp files
const multipartMemory = 8 << 20

type handlers struct {
	auth   service.AuthService
	events service.EventService
	cfg    RouterConfig
}

func (h *handlers) registerClub(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterClubRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.auth.RegisterClub(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, dto.MsgClubRegistered)
}

func (h *handlers) registerStudent(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterStudentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.auth.RegisterStudent(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, dto.MsgStudentRegistered)
}

func (h *handlers) loginClub(w http.ResponseWriter, r *http.Request) {
	var req dto.ClubLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.auth.LoginClub(r.Context(), req)
	if err != nil {
		h.logLoginFailure(r, err)
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handlers) loginStudent(w http.ResponseWriter, r *http.Request) {
	var req dto.StudentLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.auth.LoginStudent(r.Context(), req)
	if err != nil {
		h.logLoginFailure(r, err)
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handlers) logLoginFailure(r *http.Request, err error) {
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		return
	}
	middleware.Logger(r.Context()).Warn("login failed",
		"path", r.URL.Path,
		"ip", netutil.ClientIP(r),
		"user_agent", netutil.TruncateUserAgent(r.UserAgent()),
	)
}

func (h *handlers) createEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := PrincipalFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			writeFormError(w, r, err)
			return
		}
		if err := r.ParseForm(); err != nil {
			writeFormError(w, r, err)
			return
		}
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	location := r.FormValue("location")
	if location == "" {
		location = r.FormValue("venue")
	}
	req := dto.CreateEventRequest{
		Title:            r.FormValue("title"),
		Category:         r.FormValue("category"),
		Description:      r.FormValue("description"),
		DateTime:         r.FormValue("dateTime"),
		Location:         location,
		RegistrationLink: r.FormValue("registrationLink"),
		Tags:             r.FormValue("tags"),
		MaxParticipants:  r.FormValue("maxParticipants"),
		Requirements:     r.FormValue("requirements"),
		ContactEmail:     r.FormValue("contactEmail"),
		ContactPhone:     r.FormValue("contactPhone"),
	}

	var poster *service.PosterUpload
	file, header, err := r.FormFile("poster")
	switch {
	case err == nil:
		defer func(f multipart.File) { _ = f.Close() }(file)
		poster = &service.PosterUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		writeFormError(w, r, err)
		return
	}

	view, err := h.events.CreateEvent(r.Context(), actor, req, poster, h.baseURL(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.CreateEventResponse{Message: dto.MsgEventCreated, Event: *view})
}

func writeFormError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeMessage(w, http.StatusRequestEntityTooLarge, msgTooLarge)
		return
	}
	middleware.Logger(r.Context()).Warn("form parse failed", "error", err)
	writeMessage(w, http.StatusBadRequest, msgInvalidBody)
}

func (h *handlers) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context(), h.baseURL(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ListEventsResponse{Events: events})
}

func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *handlers) profile(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}
	writeJSON(w, http.StatusOK, dto.ProfileResponse{User: dto.ProfileClaims{
		UserID:   p.UserID,
		Type:     p.Type,
		Username: p.Username,
		Email:    p.Email,
	}})
}

func (h *handlers) baseURL(r *http.Request) string {
	return netutil.PublicBaseURL(r, h.cfg.PublicBaseURL)
}
