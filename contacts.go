package campaign

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/lattiq/campaign/internal/core"
)

// LoadContactsFile reads a header-row CSV file into contacts.
// Returns a *LoadError if the file cannot be opened or parsed.
func LoadContactsFile(path string) ([]Contact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewLoadError(path, "cannot open contact source", err)
	}
	defer f.Close()

	contacts, err := LoadContacts(f)
	if err != nil {
		var le *core.LoadError
		if errors.As(err, &le) {
			le.Source = path
		}
		return nil, err
	}
	return contacts, nil
}

// LoadContacts parses a header-row CSV source into one contact per data
// row, preserving row order; that order is the send order.
//
// Header names are trimmed and lower-cased so downstream placeholder
// lookups like {{email}} or {{company}} are case-insensitive regardless
// of source casing. Values are trimmed; a missing or empty cell becomes
// an empty string, never an absent key.
func LoadContacts(r io.Reader) ([]Contact, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, pad below

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, core.NewLoadError("reader", "cannot read header row", err)
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var contacts []Contact
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.NewLoadError("reader", "malformed contact row", err)
		}

		contact := make(Contact, len(keys))
		for i, key := range keys {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			contact[key] = value
		}
		contacts = append(contacts, contact)
	}

	return contacts, nil
}

// LoadTemplate reads a UTF-8 template file.
// Returns a *LoadError if the file cannot be read.
func LoadTemplate(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", core.NewLoadError(path, "cannot read template", err)
	}
	return string(content), nil
}
