// Package templates renders the HTML views of the staff system frontend.
// Views are rendered from controller snapshots; all interaction goes back
// through form posts, so the pages carry no script.
package templates

import (
	"html/template"
	"io"

	"staffroster-web/internal/domain/entity"
)

// NavData drives the navigation shell shown on every authenticated page.
// The User Maintenance entry only renders for admin sessions.
type NavData struct {
	EmployeeID string
	IsAdmin    bool
	Active     entity.ActivePage
}

// LoginData drives the sign-in page
type LoginData struct {
	Error string
}

// HomeData drives the read-only today view
type HomeData struct {
	Nav        NavData
	Today      string
	State      string
	Error      string
	Rows       []entity.DutyRecord
	Page       int
	TotalPages int
}

// DashboardData drives the routine table with inline edit, search, sort,
// pagination and the admin-only add/import/delete controls
type DashboardData struct {
	Nav          NavData
	Title        string
	State        string
	Error        string
	Success      string
	Rows         []entity.DutyRecord
	StartIdx     int
	EditIndex    int
	Draft        *entity.DutyRecord
	Search       string
	SortBy       string
	Order        string
	Page         int
	TotalPages   int
	ShowAddModal bool
	AddDraft     entity.DutyRecord
}

// ConfirmDeleteData drives the delete confirmation round trip
type ConfirmDeleteData struct {
	Nav   NavData
	JobID string
}

// UsersData drives the admin user maintenance page
type UsersData struct {
	Nav          NavData
	State        string
	Error        string
	Success      string
	Rows         []entity.UserAccount
	StartIdx     int
	EditIndex    int
	Draft        *entity.UserAccount
	Page         int
	TotalPages   int
	ShowAddModal bool
	AddDraft     entity.UserAccount
}

// Renderer holds the parsed page templates
type Renderer struct {
	login         *template.Template
	home          *template.Template
	dashboard     *template.Template
	confirmDelete *template.Template
	users         *template.Template
}

// NewRenderer parses all page templates; a parse failure is a programming
// error and panics at startup
func NewRenderer() *Renderer {
	return &Renderer{
		login:         template.Must(template.New("login").Parse(loginPage)),
		home:          template.Must(template.New("home").Parse(navShell + homePage)),
		dashboard:     template.Must(template.New("dashboard").Funcs(helpers).Parse(navShell + dashboardPage)),
		confirmDelete: template.Must(template.New("confirm").Parse(navShell + confirmDeletePage)),
		users:         template.Must(template.New("users").Funcs(helpers).Parse(navShell + usersPage)),
	}
}

var helpers = template.FuncMap{
	"add": func(a, b int) int { return a + b },
}

func (r *Renderer) Login(w io.Writer, data LoginData) error {
	return r.login.Execute(w, data)
}

func (r *Renderer) Home(w io.Writer, data HomeData) error {
	return r.home.Execute(w, data)
}

func (r *Renderer) Dashboard(w io.Writer, data DashboardData) error {
	return r.dashboard.Execute(w, data)
}

func (r *Renderer) ConfirmDelete(w io.Writer, data ConfirmDeleteData) error {
	return r.confirmDelete.Execute(w, data)
}

func (r *Renderer) Users(w io.Writer, data UsersData) error {
	return r.users.Execute(w, data)
}

const loginPage = `<!DOCTYPE html>
<html>
<head><title>WorldWide Staff System</title></head>
<body>
<h2>WorldWide Staff System</h2>
<p>Please sign in to continue</p>
<form method="POST" action="/login">
  <input type="text" name="employeeID" placeholder="Employee ID" autofocus>
  <input type="password" name="password" placeholder="Password">
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
  <button type="submit">Sign In</button>
</form>
<footer>&copy; 2025 WorldWide Staff System. All rights reserved.</footer>
</body>
</html>
`

const navShell = `{{define "nav"}}
<nav>
  <span>WorldWide Staff System</span>
  <a href="/">Today's Routine</a>
  <a href="/dashboard">Dashboard</a>
  {{if .IsAdmin}}<a href="/users">User Maintenance</a>{{end}}
  <span>{{.EmployeeID}}</span>
  <form method="POST" action="/logout"><button type="submit">Logout</button></form>
</nav>
{{end}}`

const homePage = `<!DOCTYPE html>
<html>
<head><title>Today's Routine</title></head>
<body>
{{template "nav" .Nav}}
<h2>Today's Routine ({{.Today}})</h2>
{{if eq .State "loading"}}
<div>Loading...</div>
{{else if eq .State "error"}}
<div class="error">{{.Error}}</div>
{{else if eq .State "empty"}}
<div>No routine for today.</div>
{{else}}
<table>
  <thead>
    <tr><th>Time</th><th>Flight</th><th>From</th><th>To</th><th>Remarks</th><th>Staff In Charge</th><th>Supervisor</th></tr>
  </thead>
  <tbody>
  {{range .Rows}}
    <tr>
      <td>{{if .STA}}{{.STA}}{{else}}-{{end}}{{if .ETA}} / {{.ETA}}{{end}}{{if .ATA}} / {{.ATA}}{{end}}</td>
      <td>{{.Flight}}</td>
      <td>{{.From}}</td>
      <td>{{.To}}</td>
      <td>{{.Remarks}}</td>
      <td>{{.EmployeeID}}</td>
      <td>{{.Supervisor}}</td>
    </tr>
  {{end}}
  </tbody>
</table>
<div>
  <form method="POST" action="/page">
    <button name="dir" value="prev" {{if eq .Page 1}}disabled{{end}}>Prev</button>
    <span>{{.Page}} / {{.TotalPages}}</span>
    <button name="dir" value="next" {{if eq .Page .TotalPages}}disabled{{end}}>Next</button>
  </form>
</div>
{{end}}
</body>
</html>
`

const dashboardPage = `<!DOCTYPE html>
<html>
<head><title>Duty Routine</title></head>
<body>
{{template "nav" .Nav}}
<div class="controls">
  <form method="POST" action="/dashboard/export"><button type="submit">Export to Excel</button></form>
  {{if .Nav.IsAdmin}}
  <form method="POST" action="/dashboard/add/open"><button type="submit">Add Routine</button></form>
  <form method="POST" action="/dashboard/import" enctype="multipart/form-data">
    <input type="file" name="file" accept=".xlsx,.xls">
    <button type="submit">Import Excel</button>
  </form>
  {{end}}
</div>
{{if .ShowAddModal}}
<div class="modal">
  <h3>Add New Routine</h3>
  <p>Sample format: Date 2024-07-01, STA/ETA/ATA HH:mm:ss (e.g. 08:30:00)</p>
  <form method="POST" action="/dashboard/add">
    <input name="date" placeholder="Date (e.g. 2024-07-01)" value="{{.AddDraft.Date}}">
    <input name="sn" placeholder="SN" value="{{.AddDraft.SN}}">
    <input name="flight" placeholder="Flight" value="{{.AddDraft.Flight}}">
    <input name="from" placeholder="From" value="{{.AddDraft.From}}">
    <input name="to" placeholder="To" value="{{.AddDraft.To}}">
    <input name="sta" placeholder="STA (e.g. 08:30:00)" value="{{.AddDraft.STA}}">
    <input name="eta" placeholder="ETA (e.g. 08:45:00)" value="{{.AddDraft.ETA}}">
    <input name="ata" placeholder="ATA (e.g. 08:50:00)" value="{{.AddDraft.ATA}}">
    <input name="remarks" placeholder="Remarks" value="{{.AddDraft.Remarks}}">
    <input name="employeeID" placeholder="Staff In Charge" value="{{.AddDraft.EmployeeID}}">
    <input name="supervisor" placeholder="Supervisor" value="{{.AddDraft.Supervisor}}">
    <button type="submit">Add</button>
  </form>
  <form method="POST" action="/dashboard/add/close"><button type="submit">Cancel</button></form>
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
</div>
{{end}}
<h2>{{.Title}}</h2>
<form method="GET" action="/dashboard">
  <input type="text" name="search" placeholder="Search..." value="{{.Search}}">
  <button type="submit">Search</button>
</form>
{{if eq .State "loading"}}
<div>Loading...</div>
{{else if eq .State "error"}}
<div class="error">{{.Error}}</div>
{{else if eq .State "empty"}}
<div>No routine found.</div>
{{else}}
{{if .Success}}<div class="success">{{.Success}}</div>{{end}}
<table>
  <thead>
    <tr>
      <th><a href="/dashboard/sort?field=date">Date{{if eq .SortBy "date"}} {{if eq .Order "asc"}}&#9650;{{else}}&#9660;{{end}}{{end}}</a></th>
      <th><a href="/dashboard/sort?field=sn">SN{{if eq .SortBy "sn"}} {{if eq .Order "asc"}}&#9650;{{else}}&#9660;{{end}}{{end}}</a></th>
      <th><a href="/dashboard/sort?field=flight">Flight{{if eq .SortBy "flight"}} {{if eq .Order "asc"}}&#9650;{{else}}&#9660;{{end}}{{end}}</a></th>
      <th><a href="/dashboard/sort?field=from">From{{if eq .SortBy "from"}} {{if eq .Order "asc"}}&#9650;{{else}}&#9660;{{end}}{{end}}</a></th>
      <th><a href="/dashboard/sort?field=to">To{{if eq .SortBy "to"}} {{if eq .Order "asc"}}&#9650;{{else}}&#9660;{{end}}{{end}}</a></th>
      <th><a href="/dashboard/sort?field=sta">STA{{if eq .SortBy "sta"}} {{if eq .Order "asc"}}&#9650;{{else}}&#9660;{{end}}{{end}}</a></th>
      <th><a href="/dashboard/sort?field=eta">ETA{{if eq .SortBy "eta"}} {{if eq .Order "asc"}}&#9650;{{else}}&#9660;{{end}}{{end}}</a></th>
      <th><a href="/dashboard/sort?field=ata">ATA{{if eq .SortBy "ata"}} {{if eq .Order "asc"}}&#9650;{{else}}&#9660;{{end}}{{end}}</a></th>
      <th><a href="/dashboard/sort?field=remarks">Remarks{{if eq .SortBy "remarks"}} {{if eq .Order "asc"}}&#9650;{{else}}&#9660;{{end}}{{end}}</a></th>
      <th><a href="/dashboard/sort?field=employeeID">Staff In Charge{{if eq .SortBy "employeeID"}} {{if eq .Order "asc"}}&#9650;{{else}}&#9660;{{end}}{{end}}</a></th>
      <th><a href="/dashboard/sort?field=supervisor">Supervisor{{if eq .SortBy "supervisor"}} {{if eq .Order "asc"}}&#9650;{{else}}&#9660;{{end}}{{end}}</a></th>
      <th>Actions</th>
    </tr>
  </thead>
  <tbody>
  {{$d := .}}
  {{range $i, $row := .Rows}}
    {{$g := add $d.StartIdx $i}}
    {{if eq $g $d.EditIndex}}
    <tr>
      <form method="POST" action="/dashboard/save">
      <td><input name="date" value="{{$d.Draft.Date}}"></td>
      <td><input name="sn" value="{{$d.Draft.SN}}" disabled></td>
      <td><input name="flight" value="{{$d.Draft.Flight}}"></td>
      <td><input name="from" value="{{$d.Draft.From}}"></td>
      <td><input name="to" value="{{$d.Draft.To}}"></td>
      <td><input name="sta" value="{{$d.Draft.STA}}"></td>
      <td><input name="eta" value="{{$d.Draft.ETA}}"></td>
      <td><input name="ata" value="{{$d.Draft.ATA}}"></td>
      <td><input name="remarks" value="{{$d.Draft.Remarks}}"></td>
      <td><input name="employeeID" value="{{$d.Draft.EmployeeID}}"></td>
      <td><input name="supervisor" value="{{$d.Draft.Supervisor}}"></td>
      <td>
        <button type="submit">Save</button>
      </form>
        <form method="POST" action="/dashboard/cancel"><button type="submit">Cancel</button></form>
      </td>
    </tr>
    {{else}}
    <tr>
      <td>{{$row.Date}}</td>
      <td>{{$row.SN}}</td>
      <td>{{$row.Flight}}</td>
      <td>{{$row.From}}</td>
      <td>{{$row.To}}</td>
      <td>{{$row.STA}}</td>
      <td>{{$row.ETA}}</td>
      <td>{{$row.ATA}}</td>
      <td>{{$row.Remarks}}</td>
      <td>{{$row.EmployeeID}}</td>
      <td>{{$row.Supervisor}}</td>
      <td>
        <form method="POST" action="/dashboard/edit"><button name="idx" value="{{$g}}">Edit</button></form>
        {{if $d.Nav.IsAdmin}}<form method="GET" action="/dashboard/delete"><button name="jobID" value="{{$row.JobID}}">Delete</button></form>{{end}}
      </td>
    </tr>
    {{end}}
  {{end}}
  </tbody>
</table>
<div>
  <form method="POST" action="/dashboard/page">
    <button name="dir" value="prev" {{if eq .Page 1}}disabled{{end}}>Prev</button>
    <span>{{.Page}} / {{.TotalPages}}</span>
    <button name="dir" value="next" {{if eq .Page .TotalPages}}disabled{{end}}>Next</button>
  </form>
</div>
{{end}}
</body>
</html>
`

const confirmDeletePage = `<!DOCTYPE html>
<html>
<head><title>Confirm Delete</title></head>
<body>
{{template "nav" .Nav}}
<h3>Are you sure you want to delete this routine?</h3>
<form method="POST" action="/dashboard/delete">
  <input type="hidden" name="jobID" value="{{.JobID}}">
  <input type="hidden" name="confirmed" value="true">
  <button type="submit">Delete</button>
</form>
<form method="GET" action="/dashboard"><button type="submit">Cancel</button></form>
</body>
</html>
`

const usersPage = `<!DOCTYPE html>
<html>
<head><title>User Maintenance</title></head>
<body>
{{template "nav" .Nav}}
<h2>User Maintenance</h2>
<form method="POST" action="/users/add/open"><button type="submit">Add User</button></form>
{{if .ShowAddModal}}
<div class="modal">
  <h3>Add New User</h3>
  <form method="POST" action="/users/add">
    <input name="employeeID" placeholder="Employee ID" value="{{.AddDraft.EmployeeID}}">
    <input name="name" placeholder="Name" value="{{.AddDraft.Name}}">
    <input name="password" placeholder="Password" value="{{.AddDraft.Password}}">
    <select name="permission">
      <option value="Admin" {{if eq .AddDraft.Permission "Admin"}}selected{{end}}>Admin</option>
      <option value="Staff" {{if eq .AddDraft.Permission "Staff"}}selected{{end}}>Staff</option>
    </select>
    <button type="submit">Add</button>
  </form>
  <form method="POST" action="/users/add/close"><button type="submit">Cancel</button></form>
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
</div>
{{end}}
{{if eq .State "loading"}}
<div>Loading...</div>
{{else if eq .State "error"}}
<div class="error">{{.Error}}</div>
{{else if eq .State "empty"}}
<div>No users found.</div>
{{else}}
{{if .Success}}<div class="success">{{.Success}}</div>{{end}}
<table>
  <thead>
    <tr><th>Employee ID</th><th>Name</th><th>Password</th><th>Permission</th><th>Actions</th></tr>
  </thead>
  <tbody>
  {{$d := .}}
  {{range $i, $row := .Rows}}
    {{$g := add $d.StartIdx $i}}
    {{if eq $g $d.EditIndex}}
    <tr>
      <form method="POST" action="/users/save">
      <td>{{$d.Draft.EmployeeID}}</td>
      <td><input name="name" value="{{$d.Draft.Name}}"></td>
      <td><input name="password" value="{{$d.Draft.Password}}"></td>
      <td>
        <select name="permission">
          <option value="Admin" {{if eq $d.Draft.Permission "Admin"}}selected{{end}}>Admin</option>
          <option value="Staff" {{if eq $d.Draft.Permission "Staff"}}selected{{end}}>Staff</option>
        </select>
      </td>
      <td>
        <button type="submit">Save</button>
      </form>
        <form method="POST" action="/users/cancel"><button type="submit">Cancel</button></form>
      </td>
    </tr>
    {{else}}
    <tr>
      <td>{{$row.EmployeeID}}</td>
      <td>{{$row.Name}}</td>
      <td>{{$row.Password}}</td>
      <td>{{$row.Permission}}</td>
      <td><form method="POST" action="/users/edit"><button name="idx" value="{{$g}}">Edit</button></form></td>
    </tr>
    {{end}}
  {{end}}
  </tbody>
</table>
<div>
  <form method="POST" action="/users/page">
    <button name="dir" value="prev" {{if eq .Page 1}}disabled{{end}}>Prev</button>
    <span>{{.Page}} / {{.TotalPages}}</span>
    <button name="dir" value="next" {{if eq .Page .TotalPages}}disabled{{end}}>Next</button>
  </form>
</div>
{{end}}
</body>
</html>
`
