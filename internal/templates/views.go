// Package templates renders the dashboard pages and htmx fragments. Each
// view is exposed as a templ.Component so handlers render them uniformly.
package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/toast"
	"github.com/csg33k/staffdesk/internal/workflow"
)

var funcs = template.FuncMap{
	"itoa":     itoa,
	"initials": initials,
	"phone":    phone,
}

const baseHTML = `{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} · Staff Desk</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-slate-50 text-slate-900">
<nav class="flex gap-6 px-6 py-3 bg-slate-900 text-white text-sm">
  <a href="/" class="font-semibold">Staff Desk</a>
  <a href="/employees">Employees</a>
  <a href="/api/v1/reports/progress.pdf">Progress report</a>
</nav>
<main class="max-w-5xl mx-auto p-6">{{template "content" .}}</main>
<div id="dialog"></div>
<div id="toasts" class="fixed bottom-4 right-4 w-80 space-y-2"
     hx-get="/toasts" hx-trigger="load, toasts from:body, every 2s" hx-swap="innerHTML"></div>
</body>
</html>{{end}}`

const toastsHTML = `{{define "toasts"}}{{range .}}
<div class="rounded border bg-white p-3 shadow {{if eq .Kind "error"}}border-red-400{{else if eq .Kind "success"}}border-green-400{{end}}">
  <div class="flex justify-between">
    <strong class="text-sm">{{.Title}}</strong>
    <button class="text-xs text-slate-400" hx-delete="/toasts/{{.ID}}" hx-target="#toasts">&times;</button>
  </div>
  {{with .Description}}<p class="text-sm text-slate-600">{{.}}</p>{{end}}
  {{with .Action}}<button class="mt-1 text-sm font-medium text-blue-600"
     hx-post="/undo/{{.Token}}" hx-swap="none">{{.Label}}</button>{{end}}
</div>{{end}}{{end}}`

const rowsHTML = `{{define "employee-rows"}}{{range .}}
<tr class="border-t" id="employee-{{.ID}}">
  <td class="py-2"><span class="inline-block w-8 h-8 rounded-full bg-slate-200 text-center leading-8 text-xs">{{initials .Name}}</span> {{.Name}}</td>
  <td>{{.Position}}</td>
  <td>{{.Department}}</td>
  <td class="text-xs">{{.Email}}<br>{{phone .Phone}}</td>
  <td>{{.Progress}}%</td>
  <td><button class="text-red-600 text-sm" hx-post="/employees/{{itoa .ID}}/delete" hx-target="#dialog">Delete</button></td>
</tr>{{else}}
<tr><td colspan="6" class="py-6 text-center text-slate-500">No employees found.</td></tr>{{end}}{{end}}`

const confirmHTML = `{{define "confirm"}}
<div class="fixed inset-0 bg-black/40 flex items-center justify-center">
  <div class="bg-white rounded p-6 w-96">
    <h2 class="font-semibold">Are you sure?</h2>
    <p class="text-sm text-slate-600 mt-2">This will remove {{.Ref.Name}}. You can undo this for a few seconds afterwards.</p>
    <div class="mt-4 flex justify-end gap-2">
      <button class="px-3 py-1 border rounded" hx-post="/{{.Path}}/delete/cancel" hx-target="#dialog">Cancel</button>
      <button class="px-3 py-1 rounded bg-red-600 text-white" hx-post="/{{.Path}}/delete/confirm" hx-target="#dialog">Delete</button>
    </div>
  </div>
</div>{{end}}`

var (
	fragments = template.Must(template.New("fragments").Funcs(funcs).Parse(toastsHTML + rowsHTML + confirmHTML))

	indexPage = template.Must(template.Must(template.New("index").Funcs(funcs).Parse(baseHTML)).Parse(`{{define "content"}}
<h1 class="text-2xl font-semibold mb-4">Dashboard</h1>
<div class="grid grid-cols-3 gap-4">
  {{with .Summary}}
  <div class="bg-white rounded p-4 shadow"><div class="text-sm text-slate-500">Employees</div><div class="text-2xl">{{.Employees}}</div></div>
  <div class="bg-white rounded p-4 shadow"><div class="text-sm text-slate-500">Documents</div><div class="text-2xl">{{.Documents}}</div></div>
  <div class="bg-white rounded p-4 shadow"><div class="text-sm text-slate-500">Libraries</div><div class="text-2xl">{{.Libraries}}</div></div>
  <div class="bg-white rounded p-4 shadow"><div class="text-sm text-slate-500">Upcoming trainings</div><div class="text-2xl">{{.UpcomingTrainings}}</div></div>
  <div class="bg-white rounded p-4 shadow"><div class="text-sm text-slate-500">Unread notifications</div><div class="text-2xl">{{.UnreadNotifications}}</div></div>
  <div class="bg-white rounded p-4 shadow"><div class="text-sm text-slate-500">Onboarding</div><div class="text-2xl">{{.OnboardingProgress}}%</div></div>
  {{end}}
</div>{{end}}`))

	employeesPage = template.Must(template.Must(template.Must(fragments.Clone()).Parse(baseHTML)).Parse(`{{define "content"}}
<div class="flex justify-between items-center mb-4">
  <h1 class="text-2xl font-semibold">Employees</h1>
  <input type="search" name="q" value="{{.Query}}" placeholder="Search employees..."
         class="border rounded px-3 py-1"
         hx-get="/employees/search" hx-trigger="input changed delay:300ms, search" hx-target="#employee-rows">
</div>
<table class="w-full bg-white rounded shadow text-left">
  <thead class="text-sm text-slate-500"><tr><th class="py-2">Name</th><th>Position</th><th>Department</th><th>Contact</th><th>Progress</th><th></th></tr></thead>
  <tbody id="employee-rows" hx-get="/employees/search" hx-trigger="employees from:body" hx-include="[name='q']">{{template "employee-rows" .Employees}}</tbody>
</table>{{end}}`))
)

// SummaryView is what the landing page shows.
type SummaryView struct {
	Employees           int
	Documents           int
	Libraries           int
	UpcomingTrainings   int
	UnreadNotifications int
	OnboardingProgress  int
}

func Index(s SummaryView) templ.Component {
	return component(indexPage, "base", struct {
		Title   string
		Summary SummaryView
	}{"Dashboard", s})
}

func Employees(list []domain.Employee, q string) templ.Component {
	return component(employeesPage, "base", struct {
		Title     string
		Query     string
		Employees []domain.Employee
	}{"Employees", q, list})
}

// EmployeeRows is the search-as-you-type fragment.
func EmployeeRows(list []domain.Employee) templ.Component {
	return component(fragments, "employee-rows", list)
}

// Confirm is the dialog shown while a delete waits on its gate. path is the
// URL segment the confirm and cancel buttons post to.
func Confirm(p workflow.Pending, path string) templ.Component {
	return component(fragments, "confirm", struct {
		workflow.Pending
		Path string
	}{p, path})
}

func Toasts(list []toast.Toast) templ.Component {
	return component(fragments, "toasts", list)
}

func component(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}
