package filetype

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"
)

// DocProperties holds the summary-information properties embedded in a
// legacy OLE office document. Values are raw property strings; timestamps
// keep the format the property set stored them in.
type DocProperties struct {
	Title      string `json:"title,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Author     string `json:"author,omitempty"`
	LastAuthor string `json:"last_author,omitempty"`
	Created    string `json:"created,omitempty"`
	Modified   string `json:"modified,omitempty"`
	AppName    string `json:"app_name,omitempty"`
}

// OLEProperties reads the SummaryInformation property set of the OLE
// compound file at path. Files without a property stream yield an empty
// DocProperties, not an error.
func OLEProperties(path string) (*DocProperties, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return nil, fmt.Errorf("reading OLE container %s: %w", path, err)
	}

	props := &DocProperties{}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if !msoleps.IsMSOLEPS(entry.Initial) {
			continue
		}
		ps := msoleps.New()
		if err := ps.Reset(doc); err != nil {
			slog.Debug("skipping unreadable property stream", "entry", entry.Name, "error", err)
			continue
		}
		for _, p := range ps.Property {
			val := fmt.Sprintf("%v", p)
			switch normalizePropName(p.Name) {
			case "title":
				props.Title = val
			case "subject":
				props.Subject = val
			case "author":
				props.Author = val
			case "lastauthor", "lastsavedby":
				props.LastAuthor = val
			case "createtime", "created", "creationdate":
				props.Created = val
			case "lastsavetime", "modified", "lastsaved":
				props.Modified = val
			case "appname", "applicationname":
				props.AppName = val
			}
		}
	}
	return props, nil
}

func normalizePropName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}
