package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	fmtWrite, qrOutput, qrSize = false, "", 0

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

const card = "BEGIN:VCARD\nVERSION:4.0\nFN:Erika\n Mustermann\nNOTE:a\\,b\nEND:VCARD\n"

func TestFmtStdin(t *testing.T) {
	out, err := run(t, card, "fmt")
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:ErikaMustermann\r\nNOTE:a\\,b\r\nEND:VCARD\r\n", out)
}

func TestFmtWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.vcf")
	require.NoError(t, os.WriteFile(path, []byte(card), 0o600))

	cfgPath := filepath.Join(dir, "vobject.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("line_ending: lf\n"), 0o600))

	fmtWrite = true
	rootCmd.SetArgs([]string{"--config", cfgPath, "fmt", "-w", path})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCARD\nVERSION:4.0\nFN:ErikaMustermann\nNOTE:a\\,b\nEND:VCARD\n", string(data))
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.vcf")
	bad := filepath.Join(dir, "bad.vcf")
	require.NoError(t, os.WriteFile(good, []byte(card), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("BEGIN:VCARD\nFN:x\n"), 0o600))

	out, err := run(t, "", "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "good.vcf: ok")

	_, err = run(t, "", "check", good, bad)
	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	out, err := run(t, "BEGIN:VCARD\nitem1.EMAIL;TYPE=work:a@b.c\nN:Doe;John\nBEGIN:X\nEND:X\nEND:VCARD\n", "dump")
	require.NoError(t, err)

	var docs []componentDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &docs))

	want := []componentDoc{{
		Name: "VCARD",
		Properties: []propertyDoc{
			{Group: "item1", Name: "EMAIL", Params: []paramDoc{{Name: "TYPE", Values: []string{"work"}}}, Value: "a@b.c"},
			{Name: "N", Fields: [][]string{{"Doe"}, {"John"}}},
		},
		Components: []componentDoc{{Name: "X"}},
	}}
	assert.Equal(t, want, docs)
}

func TestQR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.png")
	_, err := run(t, card, "qr", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}
