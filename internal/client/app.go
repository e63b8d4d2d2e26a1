package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"clubhub/internal/domain"
	"clubhub/internal/dto"
	"clubhub/pkg/clubclient"
)

// API is the part of the clubhub API the terminal client drives.
type API interface {
	RegisterClub(ctx context.Context, r dto.RegisterClubRequest) (string, error)
	RegisterStudent(ctx context.Context, r dto.RegisterStudentRequest) (string, error)
	LoginClub(ctx context.Context, r dto.ClubLoginRequest) (*dto.LoginResponse, error)
	LoginStudent(ctx context.Context, r dto.StudentLoginRequest) (*dto.LoginResponse, error)
	ListEvents(ctx context.Context) ([]dto.EventView, error)
	CreateEvent(ctx context.Context, token string, r dto.CreateEventRequest, poster *clubclient.Poster) (*dto.CreateEventResponse, error)
}

type App struct {
	api     API
	session *Session
	feed    *Feed
	in      *bufio.Reader
	out     io.Writer
}

func NewApp(api API, session *Session, feed *Feed, in io.Reader, out io.Writer) *App {
	return &App{
		api:     api,
		session: session,
		feed:    feed,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

func (a *App) isLoggedIn() bool { return a.session.LoggedIn() }
func (a *App) isClub() bool     { return a.session.IsClub() }

// status is the prompt header.
func (a *App) status() string {
	u, ok := a.session.User()
	if !ok {
		return "not logged in"
	}
	return fmt.Sprintf("%s (%s)", a.session.DisplayName(), u.Type)
}

func (a *App) RegisterClub(ctx context.Context) error {
	var r dto.RegisterClubRequest
	var err error
	if r.Username, err = GetSimpleText(a.in, "Username", a.out); err != nil {
		return err
	}
	if r.ClubName, err = GetSimpleText(a.in, "Club name", a.out); err != nil {
		return err
	}
	if r.Email, err = GetSimpleText(a.in, "Email", a.out); err != nil {
		return err
	}
	if r.Password, err = GetPassword(a.in, a.out); err != nil {
		return err
	}
	msg, err := a.api.RegisterClub(ctx, r)
	return a.report(msg+". Log in with login-club.", err)
}

func (a *App) RegisterStudent(ctx context.Context) error {
	var r dto.RegisterStudentRequest
	var err error
	if r.Name, err = GetSimpleText(a.in, "Full name", a.out); err != nil {
		return err
	}
	if r.StudentID, err = GetSimpleText(a.in, "Student ID", a.out); err != nil {
		return err
	}
	if r.Email, err = GetSimpleText(a.in, "Email", a.out); err != nil {
		return err
	}
	if r.Password, err = GetPassword(a.in, a.out); err != nil {
		return err
	}
	msg, err := a.api.RegisterStudent(ctx, r)
	return a.report(msg+". Log in with login-student.", err)
}

func (a *App) LoginClub(ctx context.Context) error {
	var r dto.ClubLoginRequest
	var err error
	if r.Username, err = GetSimpleText(a.in, "Username", a.out); err != nil {
		return err
	}
	if r.Password, err = GetPassword(a.in, a.out); err != nil {
		return err
	}
	res, err := a.api.LoginClub(ctx, r)
	return a.finishLogin(res, err)
}

func (a *App) LoginStudent(ctx context.Context) error {
	var r dto.StudentLoginRequest
	var err error
	if r.Email, err = GetSimpleText(a.in, "Email", a.out); err != nil {
		return err
	}
	if r.Password, err = GetPassword(a.in, a.out); err != nil {
		return err
	}
	res, err := a.api.LoginStudent(ctx, r)
	return a.finishLogin(res, err)
}

func (a *App) finishLogin(res *dto.LoginResponse, err error) error {
	if err != nil {
		return a.report("", err)
	}
	if err := a.session.Login(res.Token, res.User); err != nil {
		fmt.Fprintf(a.out, "warning: session not saved: %v\n", err)
	}
	fmt.Fprintf(a.out, "%s. Welcome, %s!\n", res.Message, a.session.DisplayName())
	return nil
}

func (a *App) Logout(context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if err := a.session.Logout(); err != nil {
		fmt.Fprintf(a.out, "warning: session file not removed: %v\n", err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	u, ok := a.session.User()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s) %s\n", a.session.DisplayName(), u.Type, u.Email)
	return nil
}

// Feed fetches events and renders them.
func (a *App) Feed(ctx context.Context) error {
	events, err := a.api.ListEvents(ctx)
	if err != nil {
		return a.report("", err)
	}
	a.feed.Replace(events)
	a.feed.Render(a.out)
	return nil
}

func (a *App) Expand(arg string) error   { return a.toggle(arg, a.feed.Expand) }
func (a *App) Collapse(arg string) error { return a.toggle(arg, a.feed.Collapse) }

func (a *App) toggle(arg string, fn func(int) error) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: expand|collapse <event number>")
		return err
	}
	if err := fn(n); err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	a.feed.Render(a.out)
	return nil
}

// PostEvent is offered to club sessions only. The gate uses the cached
// discriminant; the server enforces it again.
func (a *App) PostEvent(ctx context.Context) error {
	if !a.isClub() {
		fmt.Fprintln(a.out, "Only club admins can post events.")
		return nil
	}
	var r dto.CreateEventRequest
	prompts := []struct {
		label    string
		dst      *string
		optional bool
	}{
		{"Title", &r.Title, false},
		{"Category (" + categoryList() + ")", &r.Category, false},
		{"Date and time (e.g. 2026-11-20T17:00)", &r.DateTime, false},
		{"Location", &r.Location, false},
		{"Registration link", &r.RegistrationLink, true},
		{"Tags, comma separated", &r.Tags, true},
		{"Max participants", &r.MaxParticipants, true},
		{"Requirements, comma separated", &r.Requirements, true},
		{"Contact email", &r.ContactEmail, true},
		{"Contact phone", &r.ContactPhone, true},
	}
	var err error
	for _, p := range prompts {
		if p.optional {
			*p.dst, err = GetOptionalText(a.in, p.label, a.out)
		} else {
			*p.dst, err = GetSimpleText(a.in, p.label, a.out)
		}
		if err != nil {
			return err
		}
	}
	if r.Description, err = GetMultiline(a.in, "Description", a.out); err != nil {
		return err
	}
	path, err := GetOptionalText(a.in, "Poster image path", a.out)
	if err != nil {
		return err
	}

	var poster *clubclient.Poster
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(a.out, "Cannot open poster: %v\n", err)
			return err
		}
		defer f.Close()
		poster = &clubclient.Poster{Filename: filepath.Base(path), Body: f}
	}

	res, err := a.api.CreateEvent(ctx, a.session.Token(), r, poster)
	if err != nil {
		return a.report("", err)
	}
	fmt.Fprintf(a.out, "%s: %s on %s\n", res.Message, res.Event.Title, FormatDate(res.Event.DateTime, a.feed.loc))
	return nil
}

func categoryList() string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func (a *App) report(success string, err error) error {
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, success)
	return nil
}
