package scope

import (
	"errors"
	"testing"

	"ai-helpdesk-be/internal/dto"
)

func TestResolve(t *testing.T) {
	directory := map[string]string{
		"Payroll":        "doc-payroll",
		"Payroll Portal": "doc-portal",
		"CRM":            "doc-crm",
	}

	tests := []struct {
		name         string
		directory    map[string]string
		currentScope string
		message      string
		wantScope    string
		wantQuery    string
		wantSource   Source
		wantErr      bool
	}{
		{
			name:       "explicit tag wins",
			directory:  directory,
			message:    "#proj1 how do I reset my password",
			wantScope:  "proj1",
			wantQuery:  "how do I reset my password",
			wantSource: SourceTag,
		},
		{
			name:         "tag beats sticky scope",
			directory:    directory,
			currentScope: "doc-crm",
			message:      "#proj2 same question",
			wantScope:    "proj2",
			wantQuery:    "same question",
			wantSource:   SourceTag,
		},
		{
			name:       "tag only leaves empty query",
			directory:  directory,
			message:    "#proj1",
			wantScope:  "proj1",
			wantQuery:  "",
			wantSource: SourceTag,
		},
		{
			name:       "directory name match",
			directory:  directory,
			message:    "how do I log into CRM",
			wantScope:  "doc-crm",
			wantQuery:  "how do I log into",
			wantSource: SourceDirectory,
		},
		{
			name:       "longest name preferred",
			directory:  directory,
			message:    "payroll portal is down",
			wantScope:  "doc-portal",
			wantQuery:  "is down",
			wantSource: SourceDirectory,
		},
		{
			name:       "name match is case insensitive",
			directory:  directory,
			message:    "question about PAYROLL",
			wantScope:  "doc-payroll",
			wantQuery:  "question about",
			wantSource: SourceDirectory,
		},
		{
			name:       "partial word does not match",
			directory:  directory,
			message:    "my crms are broken",
			wantErr:    true,
			wantSource: SourceDirectory,
		},
		{
			name:         "sticky scope fallback",
			directory:    directory,
			currentScope: "doc-crm",
			message:      "and what about exports",
			wantScope:    "doc-crm",
			wantQuery:    "and what about exports",
			wantSource:   SourceSticky,
		},
		{
			name:      "no scope at all",
			directory: directory,
			message:   "hello there",
			wantErr:   true,
		},
		{
			name:      "empty directory no sticky",
			directory: map[string]string{},
			message:   "anything",
			wantErr:   true,
		},
	}

	r := NewResolver(1.0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(tt.directory, tt.currentScope, tt.message)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Resolve() = %+v, want error", res)
				}
				var needsScope *dto.NeedsScopeError
				if !errors.As(err, &needsScope) {
					t.Fatalf("error = %T, want *dto.NeedsScopeError", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if res.Scope != tt.wantScope {
				t.Errorf("Scope = %q, want %q", res.Scope, tt.wantScope)
			}
			if res.Query != tt.wantQuery {
				t.Errorf("Query = %q, want %q", res.Query, tt.wantQuery)
			}
			if res.Source != tt.wantSource {
				t.Errorf("Source = %v, want %v", res.Source, tt.wantSource)
			}
		})
	}
}

func TestNeedsScopePromptListsProjects(t *testing.T) {
	r := NewResolver(1.0)
	_, err := r.Resolve(map[string]string{"Zeta": "z", "Alpha": "a"}, "", "hello")

	var needsScope *dto.NeedsScopeError
	if !errors.As(err, &needsScope) {
		t.Fatalf("error = %T, want *dto.NeedsScopeError", err)
	}
	if len(needsScope.KnownProjects) != 2 {
		t.Fatalf("KnownProjects = %v, want 2 entries", needsScope.KnownProjects)
	}
	// Sorted for a stable prompt.
	if needsScope.KnownProjects[0] != "Alpha" || needsScope.KnownProjects[1] != "Zeta" {
		t.Errorf("KnownProjects = %v, want [Alpha Zeta]", needsScope.KnownProjects)
	}
}
