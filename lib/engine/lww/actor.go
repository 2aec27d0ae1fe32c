// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package lww

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// maxActorLength bounds actor identifiers. Actors are stored in
// every serialized document and compared on every merge, so they
// are kept short. 128 bytes is far beyond any reasonable identity
// scheme (UUIDs are 36).
const maxActorLength = 128

// resolveActor validates a caller-supplied actor, or generates a
// fresh UUID identity when the caller left it unspecified.
func resolveActor(actor string) (string, error) {
	if actor == "" {
		return uuid.NewString(), nil
	}
	if err := validateActor(actor); err != nil {
		return "", err
	}
	return actor, nil
}

// validateActor checks a non-empty actor identifier against the
// engine's identity rules: valid UTF-8, at most maxActorLength
// bytes, printable characters only, no whitespace. The rules are
// deliberately strict and deterministic — the same actor string is
// accepted or rejected identically on every call, on every replica.
func validateActor(actor string) error {
	if actor == "" {
		return fmt.Errorf("actor identifier is empty")
	}
	if len(actor) > maxActorLength {
		return fmt.Errorf("actor identifier is %d bytes, maximum is %d", len(actor), maxActorLength)
	}
	if !utf8.ValidString(actor) {
		return fmt.Errorf("actor identifier is not valid UTF-8")
	}
	for _, r := range actor {
		if unicode.IsSpace(r) {
			return fmt.Errorf("actor identifier contains whitespace")
		}
		if !unicode.IsPrint(r) {
			return fmt.Errorf("actor identifier contains non-printable character %q", r)
		}
	}
	return nil
}
