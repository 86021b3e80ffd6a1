package mcp

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"flip-mcp/internal/comps"
)

var setNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// setName rejects names that could escape the comps directory.
func setName(name string) (string, error) {
	if !setNamePattern.MatchString(name) {
		return "", fmt.Errorf("invalid comps set name %q: use letters, digits, '.', '_' or '-'", name)
	}
	return name, nil
}

// loadSet reads the named set from disk unless it is already cached.
func (s *Server) loadSet(name string) error {
	if s.store.Count(name) > 0 {
		return nil
	}
	return s.store.Load(s.cfg.CompsDir, name)
}

// resolveComps returns the sales of a stored set when set is given, otherwise
// the inline sales. Either way every record is re-normalized against now.
func (s *Server) resolveComps(set string, inline []comps.ComparableSale) ([]comps.ComparableSale, error) {
	sales := inline
	if set != "" {
		name, err := setName(set)
		if err != nil {
			return nil, err
		}
		if err := s.loadSet(name); err != nil {
			return nil, err
		}
		if sales = s.store.Get(name); len(sales) == 0 {
			if known := s.store.Names(); len(known) > 0 {
				return nil, fmt.Errorf("comps set %q not found in %s (loaded sets: %s)", name, s.cfg.CompsDir, strings.Join(known, ", "))
			}
			return nil, fmt.Errorf("comps set %q not found in %s", name, s.cfg.CompsDir)
		}
	}

	now := s.now()
	out := make([]comps.ComparableSale, len(sales))
	for i, c := range sales {
		if err := c.Normalize(now); err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func (s *Server) jsonResult(data any) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: formatResult(data)}},
	}
}

func formatResult(data any) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(out)
}
