package models

// RawPost represents one candidate post fragment scraped from the search
// results feed. Every field is best-effort: a failed selector or a missing
// DOM node leaves the field empty rather than discarding the fragment.
type RawPost struct {
	PostText         string `json:"post_text"`
	PosterName       string `json:"poster_name"`
	PosterProfileURL string `json:"poster_profile_url"`
	PostURL          string `json:"post_url"`
	TimestampText    string `json:"timestamp_text"`
}

// FieldMap returns the extracted fields keyed by their wire names. Map keys
// serialize in sorted order, so hashing the marshaled map gives a
// field-order-independent fingerprint.
func (p RawPost) FieldMap() map[string]string {
	return map[string]string{
		"post_text":          p.PostText,
		"poster_name":        p.PosterName,
		"poster_profile_url": p.PosterProfileURL,
		"post_url":           p.PostURL,
		"timestamp_text":     p.TimestampText,
	}
}
