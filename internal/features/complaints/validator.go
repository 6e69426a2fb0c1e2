package complaints

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 1000
	MaxCommentLen     = 500
)

// ValidateDraft checks the submission rules: title 1-100 characters,
// description 1-1000 characters. Nothing is sent to the remote store when
// validation fails.
func ValidateDraft(d *Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(d.Title) > MaxTitleLen {
		return errors.New("title must be 100 characters or less")
	}

	if strings.TrimSpace(d.Description) == "" {
		return errors.New("description is required")
	}
	if utf8.RuneCountInString(d.Description) > MaxDescriptionLen {
		return errors.New("description must be 1000 characters or less")
	}

	if d.Category != "" && !IsValidCategory(d.Category) {
		return errors.New("unknown category")
	}

	return nil
}

// ValidateCommentText checks comment rules: non-blank, at most 500 characters.
func ValidateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("comment text is required")
	}
	if utf8.RuneCountInString(text) > MaxCommentLen {
		return errors.New("comment must be 500 characters or less")
	}
	return nil
}
