// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fooViewer is the example entry from the Desktop Entry Specification,
// extended with a localized name and surrounding comments.
const fooViewer = `# Generated by an installer
# Keep this comment

[Desktop Entry]
Type=Application
Name=Foo Viewer
Name[da]=Foo-fremviser
Comment=The best viewer for Foo objects available!
Exec=fooview %F
Icon=fooview
MimeType=image/x-foo;
Actions=Gallery;Create;

[Desktop Action Gallery]
Exec=fooview --gallery
Name=Browse Gallery

[Desktop Action Create]
Exec=fooview --create-new
Name=Create a new Foo!
Icon=fooview-new
`

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader(fooViewer))
	require.NoError(t, err)

	assert.Equal(t, fooViewer, doc.String())
	assert.Equal(
		t,
		[]string{GroupDesktopEntry, "Desktop Action Gallery", "Desktop Action Create"},
		doc.GroupNames(),
	)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "first group is not the desktop entry",
			content: "[Other]\nName=x\n",
			wantErr: "expected [Desktop Entry]",
		},
		{
			name:    "key before any group",
			content: "Name=x\n",
			wantErr: "expected [Desktop Entry]",
		},
		{
			name:    "no group at all",
			content: "# nothing here\n",
			wantErr: "no [Desktop Entry] group found",
		},
		{
			name:    "duplicate group",
			content: "[Desktop Entry]\nType=Application\n[Desktop Entry]\n",
			wantErr: "duplicate group",
		},
		{
			name:    "duplicate key",
			content: "[Desktop Entry]\nName=a\nName=b\n",
			wantErr: "duplicate key",
		},
		{
			name:    "line without value",
			content: "[Desktop Entry]\nName\n",
			wantErr: "no value could be determined",
		},
		{
			name:    "empty locale brackets",
			content: "[Desktop Entry]\nName[]=x\n",
			wantErr: "invalid key",
		},
		{
			name:    "empty value",
			content: "[Desktop Entry]\nName=\n",
			wantErr: "invalid value",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(test.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.wantErr)
		})
	}
}

func TestParseTrimsWhitespaceAroundEquals(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader("[Desktop Entry]\nName = spaced\n"))
	require.NoError(t, err)

	value, ok := doc.DesktopEntry().Value("Name")
	require.True(t, ok)
	assert.Equal(t, "spaced", value)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader(fooViewer))
	require.NoError(t, err)

	entry, err := Decode(doc)
	require.NoError(t, err)

	want := &Entry{
		Type: TypeApplication,
		Name: LocaleString{
			Default:   "Foo Viewer",
			Localized: map[string]string{"da": "Foo-fremviser"},
		},
		Comment: LocaleString{Default: "The best viewer for Foo objects available!"},
		Icon:    IconString{Default: "fooview"},
		Exec: ExecValue{
			{{arg: "fooview"}},
			{{arg: "F", isFieldCode: true}},
		},
		MimeType: []string{"image/x-foo"},
		Actions: []Action{
			{
				ID:   "Gallery",
				Name: LocaleString{Default: "Browse Gallery"},
				Exec: ExecValue{
					{{arg: "fooview"}},
					{{arg: "--gallery"}},
				},
			},
			{
				ID:   "Create",
				Name: LocaleString{Default: "Create a new Foo!"},
				Icon: IconString{Default: "fooview-new"},
				Exec: ExecValue{
					{{arg: "fooview"}},
					{{arg: "--create-new"}},
				},
			},
		},
	}

	if diff := cmp.Diff(want, entry, cmp.AllowUnexported(execArgPart{})); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownKeysAndGroups(t *testing.T) {
	t.Parallel()

	content := `[Desktop Entry]
Type=Application
Name=App
Exec=app
X-Flatpak=org.example.App

[X-Custom Group]
Key=Value
`

	doc, err := Parse(strings.NewReader(content))
	require.NoError(t, err)

	entry, err := Decode(doc)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"X-Flatpak": "org.example.App"}, entry.OtherKeys)
	assert.Equal(
		t,
		map[string]map[string]string{"X-Custom Group": {"Key": "Value"}},
		entry.OtherGroups,
	)
}

func TestDecodeStartupNotify(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader("[Desktop Entry]\nType=Application\nName=App\nExec=app\n"))
	require.NoError(t, err)

	entry, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, StartupNotifyUnset, entry.StartupNotify)

	doc.DesktopEntry().SetBool("StartupNotify", true)

	entry, err = Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, StartupNotifyTrue, entry.StartupNotify)

	doc.DesktopEntry().SetBool("StartupNotify", false)

	entry, err = Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, StartupNotifyFalse, entry.StartupNotify)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "missing name",
			content: "[Desktop Entry]\nType=Application\nExec=app\n",
			want:    ErrNameRequired,
		},
		{
			name:    "missing type",
			content: "[Desktop Entry]\nName=App\n",
			want:    ErrTypeRequired,
		},
		{
			name:    "link without url",
			content: "[Desktop Entry]\nType=Link\nName=Site\n",
			want:    ErrURLRequired,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse(strings.NewReader(test.content))
			require.NoError(t, err)

			_, err = Decode(doc)
			assert.ErrorIs(t, err, test.want)
		})
	}
}

func TestDecodeActionWithoutGroup(t *testing.T) {
	t.Parallel()

	content := "[Desktop Entry]\nType=Application\nName=App\nExec=app\nActions=Missing;\n"

	doc, err := Parse(strings.NewReader(content))
	require.NoError(t, err)

	_, err = Decode(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
}

func TestDecodeInvalidBoolean(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader("[Desktop Entry]\nType=Application\nName=App\nHidden=maybe\n"))
	require.NoError(t, err)

	_, err = Decode(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hidden")
}
