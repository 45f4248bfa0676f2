package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/luxifer/vobject"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Print the component tree as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

type componentDoc struct {
	Name       string         `yaml:"name"`
	Properties []propertyDoc  `yaml:"properties,omitempty"`
	Components []componentDoc `yaml:"components,omitempty"`
}

type propertyDoc struct {
	Group  string     `yaml:"group,omitempty"`
	Name   string     `yaml:"name"`
	Params []paramDoc `yaml:"params,omitempty"`
	Value  string     `yaml:"value,omitempty"`
	Fields [][]string `yaml:"fields,omitempty,flow"`
}

type paramDoc struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values,flow"`
}

func newComponentDoc(c *vobject.Component) componentDoc {
	doc := componentDoc{Name: c.Name()}
	for _, p := range c.Properties() {
		doc.Properties = append(doc.Properties, newPropertyDoc(p))
	}
	for _, child := range c.Children() {
		doc.Components = append(doc.Components, newComponentDoc(child))
	}
	return doc
}

func newPropertyDoc(p *vobject.Property) propertyDoc {
	doc := propertyDoc{Group: p.Group(), Name: p.Name()}
	for _, param := range p.Params() {
		doc.Params = append(doc.Params, paramDoc{Name: param.Name(), Values: param.Values()})
	}
	if fields := p.Fields(); len(fields) == 1 && len(fields[0]) == 1 {
		doc.Value = fields[0][0]
	} else {
		doc.Fields = fields
	}
	return doc
}

func runDump(cmd *cobra.Command, args []string) error {
	comps, err := readFile(cmd, inputs(args)[0])
	if err != nil {
		return err
	}

	docs := make([]componentDoc, 0, len(comps))
	for _, c := range comps {
		docs = append(docs, newComponentDoc(c))
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return err
	}
	return enc.Close()
}
