package tableedit

import (
	"strings"
	"testing"

	"github.com/penmark/tableedit/dom"
	"github.com/penmark/tableedit/theme"
)

func TestAttachDefaults(t *testing.T) {
	doc := dom.NewDocument()
	surface, err := Attach(doc).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	defer surface.Detach()

	if surface.Editor() == nil {
		t.Fatal("Editor() = nil")
	}
	if surface.Menu() == nil {
		t.Fatal("Menu() = nil with default options")
	}
	if surface.Theme().Table != theme.Default().Table {
		t.Errorf("Theme().Table = %q, want default", surface.Theme().Table)
	}
}

func TestAttachWithoutMenu(t *testing.T) {
	surface, err := Attach(dom.NewDocument()).WithoutMenu().Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	defer surface.Detach()
	if surface.Menu() != nil {
		t.Error("Menu() != nil after WithoutMenu()")
	}
}

func TestBuilderForking(t *testing.T) {
	base := Attach(dom.NewDocument())
	custom := base.Theme(&theme.Theme{Table: "custom"})

	if base.options.theme != nil {
		t.Error("configuring a forked builder mutated the original")
	}
	if custom.options.theme.Table != "custom" {
		t.Errorf("forked builder theme = %+v, want custom", custom.options.theme)
	}
}

func TestAttachThemeFileMissing(t *testing.T) {
	if _, err := Attach(dom.NewDocument()).ThemeFile("no/such/theme.yaml").Build(); err == nil {
		t.Fatal("Build() succeeded with a missing theme file")
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	surface := Must(Attach(dom.NewDocument()).WithoutMenu().Build())
	defer surface.Detach()

	key, err := surface.ImportTable(`
		<table>
			<tr><th>Name</th><th>Qty</th></tr>
			<tr><td>Widget</td><td>3</td></tr>
		</table>`)
	if err != nil {
		t.Fatalf("ImportTable() error: %v", err)
	}

	out, err := surface.ExportTable(key)
	if err != nil {
		t.Fatalf("ExportTable() error: %v", err)
	}
	for _, want := range []string{"<table", "<th", "Widget", "border: 1px solid black"} {
		if !strings.Contains(out, want) {
			t.Errorf("exported markup missing %q:\n%s", want, out)
		}
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must() did not panic on error")
		}
	}()
	Must(Attach(dom.NewDocument()).ThemeFile("missing.yaml").Build())
}
