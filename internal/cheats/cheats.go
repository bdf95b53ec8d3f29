// Package cheats decodes Game Genie and GameShark codes.
package cheats

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// InvalidCodeError is returned for a code that can not be
// decoded.
type InvalidCodeError struct {
	Code   string
	Reason string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("cheats: invalid code %q: %s", e.Code, e.Reason)
}

// Cheat is a named group of codes.
type Cheat struct {
	Name  string
	Codes []string
}

// ParseCheatFile parses a cheat file and populates the given
// GameGenie and GameShark. The format is as follows:
//
//	# Cheat Name
//	ABC-DEF-GHI
//	01FF34C1
//
// Blank lines are ignored. Codes appearing before the first name
// are grouped under an empty name.
func ParseCheatFile(r io.Reader, genie *GameGenie, shark *GameShark) ([]Cheat, error) {
	var cheats []Cheat
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text[0] == '#' {
			cheats = append(cheats, Cheat{Name: strings.TrimSpace(text[1:])})
			continue
		}
		if len(cheats) == 0 {
			cheats = append(cheats, Cheat{})
		}
		current := &cheats[len(cheats)-1]

		var err error
		if len(text) == 8 && !strings.Contains(text, "-") {
			err = shark.Load(text, current.Name)
		} else {
			err = genie.Load(text, current.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		current.Codes = append(current.Codes, text)
	}

	return cheats, scanner.Err()
}

// WriteCheatFile writes cheats in the format read by
// ParseCheatFile.
func WriteCheatFile(w io.Writer, cheats []Cheat) error {
	bw := bufio.NewWriter(w)
	for _, c := range cheats {
		if _, err := fmt.Fprintf(bw, "# %s\n", c.Name); err != nil {
			return err
		}
		for _, code := range c.Codes {
			if _, err := fmt.Fprintln(bw, code); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
