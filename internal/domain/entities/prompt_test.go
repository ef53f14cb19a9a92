package entities

import (
	"testing"

	"github.com/volatiletech/null/v8"
)

func TestPromptPatchOverlay(t *testing.T) {
	base := PromptContent{
		Title:       "Summarize",
		Content:     "Summarize the following text:",
		Description: null.StringFrom("helper"),
		Category:    null.StringFrom("writing"),
		Tags:        []string{"nlp"},
	}

	// Empty patch inherits everything.
	next := PromptPatch{}.Overlay(base)
	if next.Title != base.Title || next.Content != base.Content {
		t.Fatalf("empty patch must inherit, got %+v", next)
	}
	if next.Description != base.Description || next.Category != base.Category {
		t.Fatalf("empty patch must inherit nullable fields, got %+v", next)
	}

	title := "Summarize v2"
	next = PromptPatch{Title: &title}.Overlay(base)
	if next.Title != "Summarize v2" {
		t.Fatalf("expected patched title, got %q", next.Title)
	}
	if next.Content != base.Content {
		t.Fatal("unpatched fields must carry over")
	}
}

func TestPromptPatchOverlay_TagsCopied(t *testing.T) {
	base := PromptContent{Title: "t", Content: "c", Tags: []string{"a"}}

	tags := []string{"x", "y"}
	next := PromptPatch{Tags: &tags}.Overlay(base)

	// The overlay must not alias the caller's slice.
	tags[0] = "mutated"
	if next.Tags[0] != "x" {
		t.Fatalf("expected defensive copy, got %v", next.Tags)
	}
}

func TestPromptPatchOverlay_EmptyStringIsAChange(t *testing.T) {
	base := PromptContent{Title: "t", Content: "c", Description: null.StringFrom("old")}

	empty := ""
	next := PromptPatch{Description: &empty}.Overlay(base)
	if !next.Description.Valid || next.Description.String != "" {
		t.Fatalf("a present empty string overwrites, got %+v", next.Description)
	}
}
