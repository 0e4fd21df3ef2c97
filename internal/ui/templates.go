package ui

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/csolympiad/portal/internal/countdown"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04:05")
	},
	"formatClock": func(secs int) string {
		return countdown.FormatSeconds(secs)
	},
	"humanTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return humanize.Time(t)
	},
	"localInput": func(t time.Time) string {
		// Value format for <input type="datetime-local">.
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02T15:04")
	},
	"add": func(a, b int) int {
		return a + b
	},
	"deref": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
	"truncate": func(s string, n int) string {
		if len(s) <= n {
			return s
		}
		return s[:n] + "..."
	},
	"percent": func(a, b int) int {
		if b == 0 {
			return 0
		}
		return (a * 100) / b
	},
}

// renderTemplate renders a template with the given data.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	layout, ok := templates["layout"]
	if !ok {
		return fmt.Errorf("layout template not found")
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	_, err = tmpl.New("content").Parse(content)
	if err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	// Add shared components.
	for compName, compContent := range templates {
		if strings.HasPrefix(compName, "components/") {
			_, err = tmpl.New(filepath.Base(compName)).Parse(compContent)
			if err != nil {
				return fmt.Errorf("parse component %s: %w", compName, err)
			}
		}
	}

	return tmpl.Execute(w, data)
}

// templates holds all template content.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-50 min-h-screen">
    {{if .Session}}
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex justify-between h-16">
                <div class="flex">
                    <a href="/" class="flex items-center px-2 py-2 text-xl font-bold text-indigo-600">
                        Competition Portal
                    </a>
                    {{if .Session.Admin}}
                    <div class="hidden sm:ml-6 sm:flex sm:space-x-8">
                        <a href="/admin/teams" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                            Teams
                        </a>
                        <a href="/admin/sessions" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                            Sessions
                        </a>
                        <a href="/admin/problems" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                            Questions
                        </a>
                    </div>
                    {{end}}
                </div>
                <div class="flex items-center space-x-4">
                    <span class="text-sm text-gray-600">{{.Session.TeamName}}</span>
                    <a href="/logout" class="text-sm text-gray-500 hover:text-gray-700">Sign out</a>
                </div>
            </div>
        </div>
    </nav>
    {{end}}
    <main class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8 py-6">
        {{template "content" .}}
    </main>
</body>
</html>`,

	"login": `{{define "content"}}
<div class="min-h-screen flex items-center justify-center bg-gray-50 py-12 px-4 sm:px-6 lg:px-8">
    <div class="max-w-md w-full space-y-8">
        <div>
            <h2 class="mt-6 text-center text-3xl font-extrabold text-gray-900">
                Competition Portal
            </h2>
            <p class="mt-2 text-center text-sm text-gray-600">
                Sign in with your team credentials
            </p>
        </div>
        {{if .Error}}
        <div class="rounded-md bg-red-50 p-4">
            <div class="text-sm text-red-700">{{.Error}}</div>
        </div>
        {{end}}
        <form class="mt-8 space-y-6" action="/login" method="POST">
            <div class="rounded-md shadow-sm -space-y-px">
                <div>
                    <label for="name" class="sr-only">Team name</label>
                    <input id="name" name="name" type="text" required
                           class="appearance-none rounded-none relative block w-full px-3 py-2 border border-gray-300 placeholder-gray-500 text-gray-900 rounded-t-md focus:outline-none focus:ring-indigo-500 focus:border-indigo-500 focus:z-10 sm:text-sm"
                           placeholder="Team name">
                </div>
                <div>
                    <label for="password" class="sr-only">Password</label>
                    <input id="password" name="password" type="password" required
                           class="appearance-none rounded-none relative block w-full px-3 py-2 border border-gray-300 placeholder-gray-500 text-gray-900 rounded-b-md focus:outline-none focus:ring-indigo-500 focus:border-indigo-500 focus:z-10 sm:text-sm"
                           placeholder="Password">
                </div>
            </div>
            <div>
                <button type="submit"
                        class="group relative w-full flex justify-center py-2 px-4 border border-transparent text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700 focus:outline-none focus:ring-2 focus:ring-offset-2 focus:ring-indigo-500">
                    Sign in
                </button>
            </div>
        </form>
    </div>
</div>
{{end}}`,

	"home": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    {{if .Error}}
    <div class="mb-4 rounded-md bg-red-50 p-4">
        <div class="text-sm text-red-700">{{.Error}}</div>
    </div>
    {{end}}

    <div class="text-center py-12">
        {{if .Exam}}
        <h1 class="text-2xl font-semibold text-gray-900">{{.Exam.Name}}</h1>
        <p class="mt-2 text-gray-600">Starts {{humanTime .Exam.StartTime}} ({{formatTime .Exam.StartTime}})</p>
        <div id="countdown" class="mt-8 text-6xl font-mono font-bold text-indigo-600">{{formatClock .Remaining}}</div>
        <p class="mt-2 text-sm text-gray-500">The questions unlock automatically when the countdown reaches zero.</p>
        {{else}}
        <h1 class="text-2xl font-semibold text-gray-900">Welcome, {{.Session.TeamName}}</h1>
        <p class="mt-4 text-gray-600">Your team has not been scheduled into a session yet. Check back later.</p>
        {{end}}
    </div>

    {{if .Exam}}
    <div class="max-w-xl mx-auto bg-white shadow rounded-lg p-6">
        <h2 class="text-lg font-medium text-gray-900">Team roster</h2>
        <p class="mt-1 text-sm text-gray-500">List everyone competing today before the session starts.</p>
        <ul class="mt-4 divide-y divide-gray-200">
            {{range .Members}}
            <li class="py-2 flex justify-between items-center">
                <span class="text-sm text-gray-900">{{.FirstName}} {{.LastName}}</span>
                <form action="/members/{{.ID}}/delete" method="POST">
                    <button type="submit" class="text-sm text-red-600 hover:text-red-800">Remove</button>
                </form>
            </li>
            {{else}}
            <li class="py-2 text-sm text-gray-500">No members added yet.</li>
            {{end}}
        </ul>
        <form class="mt-4 flex space-x-2" action="/members" method="POST">
            <input name="first_name" required placeholder="First name"
                   class="flex-1 px-3 py-2 border border-gray-300 rounded-md text-sm">
            <input name="last_name" required placeholder="Last name"
                   class="flex-1 px-3 py-2 border border-gray-300 rounded-md text-sm">
            <button type="submit" class="px-4 py-2 bg-indigo-600 text-white text-sm rounded-md hover:bg-indigo-700">Add</button>
        </form>
    </div>

    <script>
        (function() {
            var el = document.getElementById('countdown');
            var src = new EventSource('/countdown/stream');
            src.addEventListener('tick', function(e) {
                el.textContent = JSON.parse(e.data).display;
            });
            src.addEventListener('started', function() {
                src.close();
                window.location.href = '/questions';
            });
            src.addEventListener('ended', function() {
                src.close();
                window.location.href = '/thankyou';
            });
            src.onerror = function() {
                // Stream dropped: reload and let the server re-evaluate.
                src.close();
                setTimeout(function() { window.location.reload(); }, 3000);
            };
        })();
    </script>
    {{end}}
</div>
{{end}}`,

	"questions": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="flex justify-between items-center mb-4">
        <div class="flex space-x-1">
            {{$selected := .Selected}}
            {{range .Questions}}
            <a href="/questions?q={{.Num}}"
               class="px-4 py-2 text-sm font-medium rounded-t-md {{if eq .Num $selected}}bg-white border border-b-0 border-gray-300 text-indigo-600{{else}}bg-gray-100 text-gray-600 hover:text-gray-900{{end}}">
                Question {{.Num}}
            </a>
            {{end}}
        </div>
        <div class="text-sm text-gray-600">
            Time left: <span id="countdown" class="font-mono font-semibold">{{formatClock .Remaining}}</span>
        </div>
    </div>

    {{if .Error}}
    <div class="mb-4 rounded-md bg-red-50 p-4">
        <div class="text-sm text-red-700">{{.Error}}</div>
    </div>
    {{end}}

    <div class="grid grid-cols-1 lg:grid-cols-2 gap-6">
        <div class="bg-white shadow rounded-lg p-6">
            <h2 class="text-lg font-medium text-gray-900">Question {{.Current.Num}}</h2>
            <div class="mt-4 prose text-sm text-gray-700 whitespace-pre-wrap">{{.Current.Writeup}}</div>
            {{range .Current.Docs}}
            <details class="mt-4 border rounded-md p-3">
                <summary class="text-sm font-medium text-gray-900 cursor-pointer">{{.Title}}</summary>
                <div class="mt-2 text-sm text-gray-700 whitespace-pre-wrap">{{.Content}}</div>
            </details>
            {{end}}
            {{range .GlobalDocs}}
            <details class="mt-4 border rounded-md p-3">
                <summary class="text-sm font-medium text-gray-900 cursor-pointer">{{.Title}}</summary>
                <div class="mt-2 text-sm text-gray-700 whitespace-pre-wrap">{{.Content}}</div>
            </details>
            {{end}}
        </div>

        <div class="space-y-4">
            <form action="/questions/{{.Current.Num}}/submit" method="POST" id="editor-form">
                <textarea name="code" rows="18" spellcheck="false"
                          class="w-full font-mono text-sm border border-gray-300 rounded-md p-3 focus:ring-indigo-500 focus:border-indigo-500">{{.Code}}</textarea>
                <div class="mt-2 flex space-x-2">
                    <button type="submit"
                            class="px-4 py-2 bg-indigo-600 text-white text-sm font-medium rounded-md hover:bg-indigo-700">
                        Run &amp; Submit
                    </button>
                    <button type="submit" formaction="/questions/{{.Current.Num}}/save"
                            class="px-4 py-2 bg-white border border-gray-300 text-gray-700 text-sm font-medium rounded-md hover:bg-gray-50">
                        Save draft
                    </button>
                </div>
            </form>
            <div class="bg-gray-900 rounded-lg p-4">
                <h3 class="text-xs font-semibold text-gray-400 uppercase">Output</h3>
                <pre class="mt-2 text-sm text-green-400 whitespace-pre-wrap min-h-[8rem]">{{if .Output}}{{.Output}}{{else}}No submissions yet.{{end}}</pre>
            </div>
        </div>
    </div>

    <script>
        (function() {
            var el = document.getElementById('countdown');
            var src = new EventSource('/countdown/stream');
            src.addEventListener('tick', function(e) {
                el.textContent = JSON.parse(e.data).display;
            });
            src.addEventListener('ended', function() {
                src.close();
                window.location.href = '/thankyou';
            });
            src.onerror = function() {
                src.close();
                setTimeout(function() { window.location.reload(); }, 3000);
            };
        })();
    </script>
</div>
{{end}}`,

	"thankyou": `{{define "content"}}
<div class="min-h-[60vh] flex items-center justify-center">
    <div class="text-center">
        <h1 class="text-3xl font-bold text-gray-900">Your session is over</h1>
        <p class="mt-4 text-gray-600">Thank you for competing{{if .Session}}, {{.Session.TeamName}}{{end}}. Results will be announced shortly.</p>
        <a href="/logout" class="mt-8 inline-block px-4 py-2 bg-indigo-600 text-white text-sm font-medium rounded-md hover:bg-indigo-700">Sign out</a>
    </div>
</div>
{{end}}`,

	"error": `{{define "content"}}
<div class="min-h-[60vh] flex items-center justify-center">
    <div class="text-center">
        <h1 class="text-2xl font-semibold text-gray-900">Something went wrong</h1>
        <p class="mt-4 text-gray-600">{{.Message}}</p>
        <a href="/" class="mt-8 inline-block text-indigo-600 hover:text-indigo-800 text-sm">Back to the portal</a>
    </div>
</div>
{{end}}`,

	"admin/teams": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <h1 class="text-2xl font-semibold text-gray-900">Teams</h1>

    {{if .Error}}
    <div class="mt-4 rounded-md bg-red-50 p-4">
        <div class="text-sm text-red-700">{{.Error}}</div>
    </div>
    {{end}}

    <div class="mt-6 bg-white shadow rounded-lg p-6">
        <h2 class="text-lg font-medium text-gray-900">Register a team</h2>
        <form class="mt-4 flex flex-wrap gap-2" action="/admin/teams" method="POST">
            <input name="name" required placeholder="Team name"
                   class="px-3 py-2 border border-gray-300 rounded-md text-sm">
            <input name="password" type="password" required placeholder="Password"
                   class="px-3 py-2 border border-gray-300 rounded-md text-sm">
            <select name="session_id" class="px-3 py-2 border border-gray-300 rounded-md text-sm">
                <option value="0">No session</option>
                {{range .Sessions}}
                <option value="{{.ID}}">{{.Name}}</option>
                {{end}}
            </select>
            <button type="submit" class="px-4 py-2 bg-indigo-600 text-white text-sm rounded-md hover:bg-indigo-700">Create</button>
        </form>
    </div>

    <div class="mt-6 bg-white shadow rounded-lg overflow-hidden">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Team</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Session</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Reassign</th>
                    <th class="px-6 py-3"></th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{$sessions := .Sessions}}
                {{$byID := .SessionByID}}
                {{range .Teams}}
                <tr>
                    <td class="px-6 py-4 text-sm font-medium text-gray-900">{{.Name}}</td>
                    <td class="px-6 py-4 text-sm text-gray-600">
                        {{if .SessionID}}{{with index $byID (deref .SessionID)}}{{.Name}}{{end}}{{else}}<span class="text-gray-400">unscheduled</span>{{end}}
                    </td>
                    <td class="px-6 py-4">
                        <form class="flex space-x-2" action="/admin/teams/{{.ID}}" method="POST">
                            <input type="hidden" name="name" value="{{.Name}}">
                            <select name="session_id" class="px-2 py-1 border border-gray-300 rounded-md text-sm">
                                <option value="0">No session</option>
                                {{$teamSession := .SessionID}}
                                {{range $sessions}}
                                <option value="{{.ID}}" {{if and $teamSession (eq .ID (deref $teamSession))}}selected{{end}}>{{.Name}}</option>
                                {{end}}
                            </select>
                            <button type="submit" class="text-sm text-indigo-600 hover:text-indigo-800">Save</button>
                        </form>
                    </td>
                    <td class="px-6 py-4 text-right">
                        <form action="/admin/teams/{{.ID}}/delete" method="POST"
                              onsubmit="return confirm('Delete this team?');">
                            <button type="submit" class="text-sm text-red-600 hover:text-red-800">Delete</button>
                        </form>
                    </td>
                </tr>
                {{else}}
                <tr><td colspan="4" class="px-6 py-4 text-sm text-gray-500">No teams registered.</td></tr>
                {{end}}
            </tbody>
        </table>
    </div>

    <div class="mt-6 bg-white shadow rounded-lg overflow-hidden">
        <h2 class="px-6 pt-4 text-lg font-medium text-gray-900">Scores</h2>
        <table class="mt-2 min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Team</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Score</th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Scores}}
                <tr>
                    <td class="px-6 py-4 text-sm text-gray-900">{{.TeamName}}</td>
                    <td class="px-6 py-4 text-sm text-gray-600">{{.Score}} / {{.MaxScore}} ({{percent .Score .MaxScore}}%)</td>
                </tr>
                {{else}}
                <tr><td colspan="2" class="px-6 py-4 text-sm text-gray-500">No scores yet.</td></tr>
                {{end}}
            </tbody>
        </table>
    </div>
</div>
{{end}}`,

	"admin/sessions": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <h1 class="text-2xl font-semibold text-gray-900">Sessions</h1>

    {{if .Error}}
    <div class="mt-4 rounded-md bg-red-50 p-4">
        <div class="text-sm text-red-700">{{.Error}}</div>
    </div>
    {{end}}

    <div class="mt-6 bg-white shadow rounded-lg p-6">
        <h2 class="text-lg font-medium text-gray-900">Schedule a session</h2>
        <form class="mt-4 flex flex-wrap gap-2" action="/admin/sessions" method="POST">
            <input name="name" required placeholder="Session name"
                   class="px-3 py-2 border border-gray-300 rounded-md text-sm">
            <input name="start_time" type="datetime-local" required
                   class="px-3 py-2 border border-gray-300 rounded-md text-sm">
            <input name="end_time" type="datetime-local" required
                   class="px-3 py-2 border border-gray-300 rounded-md text-sm">
            <button type="submit" class="px-4 py-2 bg-indigo-600 text-white text-sm rounded-md hover:bg-indigo-700">Create</button>
        </form>
    </div>

    <div class="mt-6 space-y-4">
        {{range .Sessions}}
        <div class="bg-white shadow rounded-lg p-6">
            <div class="flex justify-between items-start">
                <div>
                    <h3 class="text-lg font-medium text-gray-900">{{.Name}}</h3>
                    <p class="mt-1 text-sm text-gray-600">{{formatTime .StartTime}} to {{formatTime .EndTime}} ({{humanTime .StartTime}})</p>
                </div>
                <form action="/admin/sessions/{{.ID}}/delete" method="POST"
                      onsubmit="return confirm('Delete this session?');">
                    <button type="submit" class="text-sm text-red-600 hover:text-red-800">Delete</button>
                </form>
            </div>
            <form class="mt-4 flex flex-wrap gap-2" action="/admin/sessions/{{.ID}}" method="POST">
                <input name="name" value="{{.Name}}" required
                       class="px-3 py-2 border border-gray-300 rounded-md text-sm">
                <input name="start_time" type="datetime-local" value="{{localInput .StartTime}}" required
                       class="px-3 py-2 border border-gray-300 rounded-md text-sm">
                <input name="end_time" type="datetime-local" value="{{localInput .EndTime}}" required
                       class="px-3 py-2 border border-gray-300 rounded-md text-sm">
                <button type="submit" class="px-4 py-2 bg-white border border-gray-300 text-gray-700 text-sm rounded-md hover:bg-gray-50">Reschedule</button>
            </form>
        </div>
        {{else}}
        <div class="bg-white shadow rounded-lg p-6 text-sm text-gray-500">No sessions scheduled.</div>
        {{end}}
    </div>
</div>
{{end}}`,

	"admin/problems": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="flex justify-between items-center">
        <h1 class="text-2xl font-semibold text-gray-900">Questions</h1>
        <form action="/admin/problems" method="POST">
            <button type="submit" class="px-4 py-2 bg-indigo-600 text-white text-sm rounded-md hover:bg-indigo-700">New question</button>
        </form>
    </div>

    {{if .Error}}
    <div class="mt-4 rounded-md bg-red-50 p-4">
        <div class="text-sm text-red-700">{{.Error}}</div>
    </div>
    {{end}}

    <div class="mt-6 bg-white shadow rounded-lg overflow-hidden">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Question</th>
                    <th class="px-6 py-3"></th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Problems}}
                <tr>
                    <td class="px-6 py-4 text-sm font-medium text-gray-900">Question {{.}}</td>
                    <td class="px-6 py-4 text-right space-x-4">
                        <a href="/admin/problems/{{.}}" class="text-sm text-indigo-600 hover:text-indigo-800">Edit</a>
                        <form class="inline" action="/admin/problems/{{.}}/delete" method="POST"
                              onsubmit="return confirm('Delete this question?');">
                            <button type="submit" class="text-sm text-red-600 hover:text-red-800">Delete</button>
                        </form>
                    </td>
                </tr>
                {{else}}
                <tr><td colspan="2" class="px-6 py-4 text-sm text-gray-500">No questions yet.</td></tr>
                {{end}}
            </tbody>
        </table>
    </div>
</div>
{{end}}`,

	"admin/problem_edit": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <h1 class="text-2xl font-semibold text-gray-900">Question {{.Problem.Num}}</h1>

    {{if .Error}}
    <div class="mt-4 rounded-md bg-red-50 p-4">
        <div class="text-sm text-red-700">{{.Error}}</div>
    </div>
    {{end}}

    <form class="mt-6 space-y-4" action="/admin/problems/{{.Problem.Num}}" method="POST">
        <div>
            <label class="block text-sm font-medium text-gray-700">Prompt</label>
            <textarea name="prompt" rows="8" required
                      class="mt-1 w-full border border-gray-300 rounded-md p-3 text-sm">{{.Problem.Prompt}}</textarea>
        </div>
        <div>
            <label class="block text-sm font-medium text-gray-700">Starter code</label>
            <textarea name="starter_code" rows="6" spellcheck="false"
                      class="mt-1 w-full font-mono border border-gray-300 rounded-md p-3 text-sm">{{.Problem.StarterCode}}</textarea>
        </div>
        <div>
            <label class="block text-sm font-medium text-gray-700">Grading cases (hidden from teams)</label>
            <textarea name="test_cases" rows="6" spellcheck="false" required
                      class="mt-1 w-full font-mono border border-gray-300 rounded-md p-3 text-sm">{{.Problem.TestCases}}</textarea>
        </div>
        <div>
            <label class="block text-sm font-medium text-gray-700">Demo cases (shown to teams)</label>
            <textarea name="demo_cases" rows="4" spellcheck="false"
                      class="mt-1 w-full font-mono border border-gray-300 rounded-md p-3 text-sm">{{.Problem.DemoCases}}</textarea>
        </div>
        <div class="flex space-x-2">
            <button type="submit" class="px-4 py-2 bg-indigo-600 text-white text-sm rounded-md hover:bg-indigo-700">Save</button>
            <a href="/admin/problems" class="px-4 py-2 bg-white border border-gray-300 text-gray-700 text-sm rounded-md hover:bg-gray-50">Back</a>
        </div>
    </form>
</div>
{{end}}`,
}
