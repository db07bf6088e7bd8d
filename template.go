package enver

import "strings"

const templateHeader = "# Title\n" +
	"# description: Description\n" +
	"# required   : no | warn | fatal\n" +
	"# default    : default value\n" +
	"# options    : possible values\n" +
	"# SOME_VARIABLE=some-value\n\n"

const noDefault = "<none>"

func renderEntry(e Entry) string {
	def := e.Default
	if def == "" {
		def = noDefault
	}
	var b strings.Builder
	b.WriteString("# " + e.Title + "\n")
	b.WriteString("# description: " + e.Description + "\n")
	b.WriteString("# required   : " + string(e.Importance) + "\n")
	b.WriteString("# default    : " + def + "\n")
	b.WriteString("# options    : " + e.Options + "\n")
	b.WriteString(e.Name + "=" + e.Default + "\n\n")
	return b.String()
}

// Render returns the template text Manager.Init writes for entries. Entries are
// not validated.
func Render(entries []Entry) string {
	var b strings.Builder
	b.WriteString(templateHeader)
	for _, e := range entries {
		b.WriteString(renderEntry(e))
	}
	return b.String()
}
