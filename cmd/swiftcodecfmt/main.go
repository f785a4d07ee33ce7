// Command swiftcodecfmt reformats a JSON document read from a file or
// stdin: recompact or indent it, sort its object keys, convert it to
// YAML, or probe the decoded value's Go representation.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/modern-go/reflect2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kadir-run/swiftcodec"
)

var (
	verbose   bool
	indent    bool
	sortKeys  bool
	toYAML    bool
	probeKind bool
	noColor   bool
)

func main() {
	root := &cobra.Command{
		Use:   "swiftcodecfmt [file]",
		Short: "reformat, sort, or inspect a JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().BoolVar(&indent, "indent", false, "emit two-space indented output")
	root.Flags().BoolVar(&sortKeys, "sort-keys", false, "sort object keys lexicographically")
	root.Flags().BoolVar(&toYAML, "to-yaml", false, "convert the document to YAML instead of JSON")
	root.Flags().BoolVar(&probeKind, "probe", false, "print the Go type backing each decoded leaf, then exit")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	color.NoColor = noColor || !isTerminal(os.Stdout)

	var src io.Reader = os.Stdin
	name := "<stdin>"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
		name = args[0]
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	log.WithField("bytes", len(data)).Debug("read input")

	v, err := swiftcodec.Decode(data)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "decode error: %v\n", err)
		return err
	}
	log.WithField("kind", v.Kind()).Debug("decoded top-level value")

	if probeKind {
		return probeValue(v, 0)
	}
	if toYAML {
		return emitYAML(v)
	}
	return emitJSON(v)
}

func emitJSON(v *swiftcodec.Value) error {
	opts := swiftcodec.Options(0)
	if indent {
		opts |= swiftcodec.OptIndent2
	}
	if sortKeys {
		opts |= swiftcodec.OptSortKeys
	}
	out, err := swiftcodec.MarshalOptions(v, opts)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "encode error: %v\n", err)
		return err
	}
	os.Stdout.Write(out)
	if len(out) == 0 || out[len(out)-1] != '\n' {
		fmt.Println()
	}
	return nil
}

func emitYAML(v *swiftcodec.Value) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(toYAMLNode(v))
}

// toYAMLNode converts a Value tree into a *yaml.Node tree. yaml.v3 has no
// MapSlice/MapItem (that API is v2-only); building mapping nodes by hand
// with alternating key/value Content entries is how v3 keeps object key
// order on encode instead of falling back to an unordered map[string]any.
func toYAMLNode(v *swiftcodec.Value) *yaml.Node {
	switch v.Kind() {
	case swiftcodec.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case swiftcodec.KindBool:
		s := "false"
		if v.Bool() {
			s = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}
	case swiftcodec.KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int(), 10)}
	case swiftcodec.KindUint:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(v.Uint(), 10)}
	case swiftcodec.KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.Float(), 'g', -1, 64)}
	case swiftcodec.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}
	case swiftcodec.KindArray:
		items := v.Array()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, len(items))}
		for i, it := range items {
			node.Content[i] = toYAMLNode(it)
		}
		return node
	case swiftcodec.KindObject:
		members := v.Object().Members()
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, len(members)*2)}
		for _, m := range members {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key.Str}
			node.Content = append(node.Content, key, toYAMLNode(m.Val))
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprintf("<%s>", v.Kind())}
	}
}

// probeValue prints, for every leaf, the reflect2 type descriptor that
// would back it if it were round-tripped through Go's reflection-based
// marshalers — a diagnostic aid for callers debugging how a value will
// look to reflect-based consumers downstream of this decoder.
func probeValue(v *swiftcodec.Value, depth int) error {
	prefix := ""
	for i := 0; i < depth; i++ {
		prefix += "  "
	}
	switch v.Kind() {
	case swiftcodec.KindArray:
		fmt.Printf("%s[array] len=%d\n", prefix, len(v.Array()))
		for _, it := range v.Array() {
			if err := probeValue(it, depth+1); err != nil {
				return err
			}
		}
	case swiftcodec.KindObject:
		fmt.Printf("%s[object] len=%d\n", prefix, v.Object().Len())
		for _, m := range v.Object().Members() {
			fmt.Printf("%s  %s:\n", prefix, m.Key.Str)
			if err := probeValue(m.Val, depth+2); err != nil {
				return err
			}
		}
	case swiftcodec.KindNull:
		fmt.Printf("%s%s -> <nil>\n", prefix, v.Kind())
	default:
		rt := reflect2.TypeOf(probeNative(v))
		fmt.Printf("%s%s -> %s\n", prefix, v.Kind(), rt.String())
	}
	return nil
}

func probeNative(v *swiftcodec.Value) any {
	switch v.Kind() {
	case swiftcodec.KindNull:
		return nil
	case swiftcodec.KindBool:
		return v.Bool()
	case swiftcodec.KindInt:
		return v.Int()
	case swiftcodec.KindUint:
		return v.Uint()
	case swiftcodec.KindFloat:
		return v.Float()
	case swiftcodec.KindString:
		return v.Str()
	default:
		return v
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
