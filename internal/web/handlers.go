package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"crypto-tracker/internal/auth"
	"crypto-tracker/internal/detail"
	"crypto-tracker/internal/domain"
	"crypto-tracker/internal/session"
)

// ensureLoaded fetches the coin list on first use. Failures are logged by the
// provider and the page renders whatever list it has.
func ensureLoaded(ctx context.Context, sess *session.Session) {
	if sess.Market.Loaded() {
		return
	}
	_ = sess.Market.Load(ctx)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	ensureLoaded(r.Context(), sess)

	data := s.layout(sess, "CryptoTracker", "/")
	data.List = newListPage(sess.Market.Snapshot())
	s.render(w, "list", http.StatusOK, data)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	req := detail.Request{
		ID:       r.PathValue("id"),
		Currency: sess.Market.Currency(),
		Days:     detail.ParseWindow(r.URL.Query().Get("days")),
	}

	page, err := sess.Detail.Load(r.Context(), req)
	if err != nil {
		s.logger.Printf("Detail %s abandoned: %v", req.ID, err)
		return
	}

	data := s.layout(sess, "CryptoTracker", r.URL.RequestURI())
	if page.Error != "" {
		data.Error = page.Error
		s.render(w, "error", page.Status, data)
		return
	}
	data.Title = page.Header.Name + " | CryptoTracker"
	data.Detail = page
	s.render(w, "detail", page.Status, data)
}

func (s *Server) handleCurrency(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	cur, found := domain.LookupCurrency(r.FormValue("currency"))
	if !found {
		http.Error(w, "unknown currency", http.StatusBadRequest)
		return
	}
	// The previous list stays when the fetch fails.
	_ = sess.Market.SetCurrency(r.Context(), cur)
	redirectBack(w, r)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	ensureLoaded(r.Context(), sess)

	q := r.FormValue("q")
	sess.Navbar.Input(q)
	if q != "" {
		sess.Navbar.Submit()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	ensureLoaded(r.Context(), sess)

	coins := sess.Navbar.Input(r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toSuggestions(coins))
}

func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Navbar.Pick(r.FormValue("name"))
	redirectBack(w, r)
}

func (s *Server) handleLoginOpen(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Auth.Open()
	redirectBack(w, r)
}

func (s *Server) handleLoginClose(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Auth.Close()
	redirectBack(w, r)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	form := auth.Form{
		Name:     r.FormValue(auth.FieldName),
		Email:    r.FormValue(auth.FieldEmail),
		Phone:    r.FormValue(auth.FieldPhone),
		Password: r.FormValue(auth.FieldPassword),
	}
	if _, err := sess.Auth.Submit(form); err != nil {
		s.logger.Printf("Login validation failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	redirectBack(w, r)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Auth.Logout()
	redirectBack(w, r)
}

// session resolves the caller's session or writes a 500.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessionFor(w, r)
	if err != nil {
		s.logger.Printf("Failed to resolve session: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return sess, true
}

func (s *Server) render(w http.ResponseWriter, page string, status int, data layoutData) {
	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger.Printf("Failed to render %s: %v", page, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
