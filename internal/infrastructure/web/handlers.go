package web

import (
	"io"
	"net/http"
	"strconv"

	"staffroster-web/internal/domain/entity"
	"staffroster-web/internal/usecase"
	"staffroster-web/pkg/xlsx"
	"staffroster-web/templates"
)

// editableFields are the form inputs accepted by the save and add handlers.
// SN is listed for add only; the inline edit form submits it disabled.
var editableFields = []entity.RoutineField{
	entity.FieldDate, entity.FieldFlight, entity.FieldFrom, entity.FieldTo,
	entity.FieldSTA, entity.FieldETA, entity.FieldATA, entity.FieldRemarks,
	entity.FieldEmployeeID, entity.FieldSupervisor,
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.resolve(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, s.renderer.Login(w, templates.LoginData{}))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	employeeID := r.PostFormValue("employeeID")
	password := r.PostFormValue("password")

	session, err := s.sessions.Login(r.Context(), employeeID, password)
	if err != nil {
		s.render(w, s.renderer.Login(w, templates.LoginData{Error: err.Error()}))
		return
	}

	roster := usecase.NewRosterController(s.rosterRepo, session.EmployeeID, session.IsAdmin, s.pageSize, s.logger)
	roster.SetImportValidator(xlsx.ValidateRoutineSheet)

	state := &sessionState{
		roster: roster,
		users:  usecase.NewUserDirectory(s.userRepo, s.pageSize, s.logger),
		today:  usecase.NewTodayView(s.rosterRepo, session.EmployeeID, s.pageSize, s.logger),
	}

	s.mu.Lock()
	s.states[session.ID] = state
	s.mu.Unlock()

	s.metrics.LoginsTotal.Inc()
	s.metrics.ActiveSessions.Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Logout(cookie.Value)
		s.dropState(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) dropState(sessionID string) {
	s.mu.Lock()
	if _, ok := s.states[sessionID]; ok {
		delete(s.states, sessionID)
		s.metrics.ActiveSessions.Dec()
	}
	s.mu.Unlock()
}

// --- home (today's routine) ---

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	s.observe("list", func() error { return rc.state.today.Load(r.Context()) })
	s.renderHome(w, rc)
}

func (s *Server) handleHomePage(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	rc.state.today.SetPage(pageAfter(r, rc.state.today.Page()))
	s.renderHome(w, rc)
}

func (s *Server) renderHome(w http.ResponseWriter, rc *requestCtx) {
	v := rc.state.today
	s.render(w, s.renderer.Home(w, templates.HomeData{
		Nav:        s.navData(rc, entity.PageHome),
		Today:      v.Today(),
		State:      v.State().String(),
		Error:      v.Error(),
		Rows:       v.Displayed(),
		Page:       v.Page(),
		TotalPages: v.TotalPages(),
	}))
}

// --- dashboard (routine table) ---

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	c := rc.state.roster
	if r.URL.Query().Has("search") {
		s.observe("list", func() error { return c.SetSearch(r.Context(), r.URL.Query().Get("search")) })
	} else {
		s.observe("list", func() error { return c.Load(r.Context()) })
	}
	s.renderDashboard(w, rc)
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	field := entity.RoutineField(r.URL.Query().Get("field"))
	s.observe("list", func() error { return rc.state.roster.ToggleSort(r.Context(), field) })
	s.renderDashboard(w, rc)
}

func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	rc.state.roster.SetPage(pageAfter(r, rc.state.roster.Page()))
	s.renderDashboard(w, rc)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	idx, err := strconv.Atoi(r.PostFormValue("idx"))
	if err == nil {
		rc.state.roster.BeginEdit(idx)
	}
	s.renderDashboard(w, rc)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	rc.state.roster.CancelEdit()
	s.renderDashboard(w, rc)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	c := rc.state.roster
	for _, f := range editableFields {
		if r.PostForm.Has(string(f)) {
			c.UpdateDraftField(f, r.PostFormValue(string(f)))
		}
	}
	s.observe("save", func() error { return c.SaveEdit(r.Context()) })
	s.renderDashboard(w, rc)
}

func (s *Server) handleAddOpen(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	rc.state.roster.OpenAddModal()
	s.renderDashboard(w, rc)
}

func (s *Server) handleAddClose(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	rc.state.roster.CloseAddModal()
	s.renderDashboard(w, rc)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	c := rc.state.roster
	c.UpdateAddField(entity.FieldSN, r.PostFormValue("sn"))
	for _, f := range editableFields {
		if r.PostForm.Has(string(f)) {
			c.UpdateAddField(f, r.PostFormValue(string(f)))
		}
	}
	s.observe("add", func() error { return c.AddRecord(r.Context()) })
	s.renderDashboard(w, rc)
}

func (s *Server) handleDeleteConfirm(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	if !rc.session.isAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	s.render(w, s.renderer.ConfirmDelete(w, templates.ConfirmDeleteData{
		Nav:   s.navData(rc, entity.PageDashboard),
		JobID: r.URL.Query().Get("jobID"),
	}))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	jobID := r.PostFormValue("jobID")
	confirmed := r.PostFormValue("confirmed") == "true"
	s.observe("delete", func() error {
		return rc.state.roster.DeleteRecord(r.Context(), jobID, confirmed)
	})
	s.renderDashboard(w, rc)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	if !rc.session.isAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, "bad upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderDashboard(w, rc)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "bad upload", http.StatusBadRequest)
		return
	}

	s.observe("import", func() error {
		return rc.state.roster.ImportExcel(r.Context(), header.Filename, data)
	})
	s.renderDashboard(w, rc)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	var data []byte
	err := s.observe("export", func() error {
		var err error
		data, err = rc.state.roster.ExportExcel(r.Context())
		return err
	})
	if err != nil {
		s.renderDashboard(w, rc)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="routine.xlsx"`)
	w.Write(data)
}

func (s *Server) renderDashboard(w http.ResponseWriter, rc *requestCtx) {
	c := rc.state.roster
	title := "My Duty Routine"
	if rc.session.isAdmin {
		title = "All Employees' Routine Table"
	}
	query := c.Query()
	s.render(w, s.renderer.Dashboard(w, templates.DashboardData{
		Nav:          s.navData(rc, entity.PageDashboard),
		Title:        title,
		State:        c.State().String(),
		Error:        c.Error(),
		Success:      c.Success(),
		Rows:         c.Displayed(),
		StartIdx:     (c.Page() - 1) * c.PageSize(),
		EditIndex:    c.EditIndex(),
		Draft:        c.Draft(),
		Search:       query.Search,
		SortBy:       string(query.SortBy),
		Order:        string(query.Order),
		Page:         c.Page(),
		TotalPages:   c.TotalPages(),
		ShowAddModal: c.ShowAddModal(),
		AddDraft:     c.AddDraft(),
	}))
}

// --- user maintenance (admin only) ---

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	s.observe("users", func() error { return rc.state.users.Load(r.Context()) })
	s.renderUsers(w, rc)
}

func (s *Server) handleUsersPage(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	rc.state.users.SetPage(pageAfter(r, rc.state.users.Page()))
	s.renderUsers(w, rc)
}

func (s *Server) handleUsersEdit(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	idx, err := strconv.Atoi(r.PostFormValue("idx"))
	if err == nil {
		rc.state.users.BeginEdit(idx)
	}
	s.renderUsers(w, rc)
}

func (s *Server) handleUsersCancel(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	rc.state.users.CancelEdit()
	s.renderUsers(w, rc)
}

func (s *Server) handleUsersSave(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	d := rc.state.users
	d.UpdateDraft(
		r.PostFormValue("name"),
		r.PostFormValue("password"),
		entity.Permission(r.PostFormValue("permission")),
	)
	s.observe("users", func() error { return d.SaveEdit(r.Context()) })
	s.renderUsers(w, rc)
}

func (s *Server) handleUsersAddOpen(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	rc.state.users.OpenAddModal()
	s.renderUsers(w, rc)
}

func (s *Server) handleUsersAddClose(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	rc.state.users.CloseAddModal()
	s.renderUsers(w, rc)
}

func (s *Server) handleUsersAdd(w http.ResponseWriter, r *http.Request, rc *requestCtx) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	d := rc.state.users
	d.UpdateAddDraft(
		r.PostFormValue("employeeID"),
		r.PostFormValue("name"),
		r.PostFormValue("password"),
		entity.Permission(r.PostFormValue("permission")),
	)
	s.observe("users", func() error { return d.AddUser(r.Context()) })
	s.renderUsers(w, rc)
}

func (s *Server) renderUsers(w http.ResponseWriter, rc *requestCtx) {
	d := rc.state.users
	s.render(w, s.renderer.Users(w, templates.UsersData{
		Nav:          s.navData(rc, entity.PageUsers),
		State:        d.State().String(),
		Error:        d.Error(),
		Success:      d.Success(),
		Rows:         d.Displayed(),
		StartIdx:     (d.Page() - 1) * s.pageSize,
		EditIndex:    d.EditIndex(),
		Draft:        d.Draft(),
		Page:         d.Page(),
		TotalPages:   d.TotalPages(),
		ShowAddModal: d.ShowAddModal(),
		AddDraft:     d.AddDraft(),
	}))
}

// --- shared helpers ---

func (s *Server) navData(rc *requestCtx, active entity.ActivePage) templates.NavData {
	return templates.NavData{
		EmployeeID: rc.session.employeeID,
		IsAdmin:    rc.session.isAdmin,
		Active:     active,
	}
}

// pageAfter applies a prev/next form submission to the current page number;
// the controllers clamp the result
func pageAfter(r *http.Request, current int) int {
	switch r.PostFormValue("dir") {
	case "prev":
		return current - 1
	case "next":
		return current + 1
	}
	return current
}

func (s *Server) render(w http.ResponseWriter, err error) {
	if err != nil {
		s.logger.Error("Template render failed", "error", err)
	}
}
