package command

import (
	"errors"
	"strings"
)

// DefaultPrefix is the chat trigger for a stats lookup.
const DefaultPrefix = "!stats"

var (
	// ErrNotCommand means the message is not addressed to the bot.
	ErrNotCommand = errors.New("not a stats command")
	// ErrUsage means the command carried no player argument.
	ErrUsage = errors.New("missing player argument")
	// ErrMalformedID means the argument is not of the form name#tag.
	ErrMalformedID = errors.New("player must be given as name#tag")
)

// RiotID identifies a player by display name and tag.
type RiotID struct {
	Name string
	Tag  string
}

func (id RiotID) String() string {
	return id.Name + "#" + id.Tag
}

// Parse extracts the player from a chat message such as "!stats Sample Name#JP1".
// The prefix must be its own token. Everything after it is the player id, so names may contain spaces.
func Parse(content, prefix string) (RiotID, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	content = strings.TrimSpace(content)
	rest, found := strings.CutPrefix(content, prefix)
	if !found {
		return RiotID{}, ErrNotCommand
	}
	if rest != "" && !startsWithSpace(rest) {
		return RiotID{}, ErrNotCommand
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return RiotID{}, ErrUsage
	}
	return ParseRiotID(rest)
}

// ParseRiotID splits "name#tag" on its single separator.
func ParseRiotID(s string) (RiotID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RiotID{}, ErrUsage
	}
	parts := strings.Split(s, "#")
	if len(parts) != 2 {
		return RiotID{}, ErrMalformedID
	}
	id := RiotID{Name: strings.TrimSpace(parts[0]), Tag: strings.TrimSpace(parts[1])}
	if id.Name == "" || id.Tag == "" {
		return RiotID{}, ErrMalformedID
	}
	return id, nil
}

func startsWithSpace(s string) bool {
	switch s[0] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
