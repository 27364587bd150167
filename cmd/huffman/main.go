package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/cocosip/go-huffman-codec/codec"
	_ "github.com/cocosip/go-huffman-codec/codec/packed"
	"github.com/cocosip/go-huffman-codec/codec/text"
	"github.com/cocosip/go-huffman-codec/huffman"
	"github.com/cocosip/go-huffman-codec/internal/config"
	"github.com/cocosip/go-huffman-codec/internal/handler"
	"github.com/cocosip/go-huffman-codec/internal/repo"
	"github.com/cocosip/go-huffman-codec/internal/router"
	"github.com/cocosip/go-huffman-codec/internal/service"
	"github.com/cocosip/go-huffman-codec/pkg/logger"
)

const helpMsg = `huffman - build, apply and store Huffman codes

Usage:
   huffman demo   [-dir D] [-format text|packed]          - run the a..f example end to end
   huffman codes  -text T | -alphabet a:5,b:9,...          - print a code table and its statistics
   huffman encode -in FILE -table OUT -stream OUT [-format] - encode a file, saving table and stream
   huffman decode -table FILE -stream FILE [-format]       - decode a stream to stdout
   huffman serve  [-port P]                                 - serve the HTTP API

Environment: HUFFMAN_PORT, HUFFMAN_DATABASE_URL, HUFFMAN_FORMAT, HUFFMAN_DB_MAX_CONNS.`

// demo file names kept from the program this tool grew out of
const (
	demoCodesFile  = "codes.txt"
	demoStreamFile = "texte_encode.txt"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err.Error()+"\n\n"+helpMsg)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: need a command", errUsage)
	}
	cfg := config.Load()

	switch args[0] {
	case "-h", "--help", "help":
		fmt.Fprintln(stdout, helpMsg)
		return nil
	case "demo":
		return runDemo(args[1:], stdout)
	case "codes":
		return runCodes(args[1:], stdout)
	case "encode":
		return runEncode(args[1:], stdout, cfg)
	case "decode":
		return runDecode(args[1:], stdout, cfg)
	case "serve":
		return runServe(args[1:], cfg)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s: unexpected argument %q", errUsage, fs.Name(), fs.Arg(0))
	}
	return nil
}

func runDemo(args []string, stdout io.Writer) error {
	fs := newFlagSet("demo")
	dir := fs.String("dir", ".", "directory for the code table and stream files")
	format := fs.String("format", text.Name, "file format")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	c, err := codec.Get(*format)
	if err != nil {
		return err
	}

	tree, err := huffman.BuildTree(huffman.DemoAlphabet())
	if err != nil {
		return err
	}
	table := huffman.GenerateCodes(tree)
	fmt.Fprintln(stdout, "Codes Huffman : ")
	fmt.Fprint(stdout, table)

	stream, err := huffman.EncodeString(huffman.DemoText, table)
	if err != nil {
		return err
	}
	codesPath := filepath.Join(*dir, demoCodesFile)
	streamPath := filepath.Join(*dir, demoStreamFile)
	if err := codec.SaveTable(codesPath, c, table); err != nil {
		return err
	}
	if err := codec.SaveStream(streamPath, c, stream); err != nil {
		return err
	}

	decoded, err := decodeFiles(codesPath, streamPath, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Texte décodé : %s\n", decoded)
	return nil
}

func runCodes(args []string, stdout io.Writer) error {
	fs := newFlagSet("codes")
	txt := fs.String("text", "", "text to tally symbol frequencies from")
	alpha := fs.String("alphabet", "", "comma separated symbol:weight pairs")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var alphabet []huffman.WeightedSymbol
	switch {
	case *txt != "" && *alpha != "":
		return fmt.Errorf("%w: codes: -text and -alphabet are exclusive", errUsage)
	case *txt != "":
		alphabet = huffman.CountFrequencies(*txt)
	case *alpha != "":
		var err error
		if alphabet, err = parseAlphabet(*alpha); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: codes: need -text or -alphabet", errUsage)
	}

	tree, err := huffman.BuildTree(alphabet)
	if err != nil {
		return err
	}
	table := huffman.GenerateCodes(tree)
	st, err := huffman.Analyze(alphabet, table)
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, table)
	fmt.Fprintf(stdout, "symbols: %d  max length: %d  average length: %.4f  entropy: %.4f  efficiency: %.4f\n",
		st.Symbols, st.MaxLength, st.AverageLength, st.Entropy, st.Efficiency)
	return nil
}

// parseAlphabet reads "a:5,b:9"; the symbol is everything before the last ':'
func parseAlphabet(s string) ([]huffman.WeightedSymbol, error) {
	var out []huffman.WeightedSymbol
	for _, pair := range strings.Split(s, ",") {
		i := strings.LastIndex(pair, ":")
		if i < 0 {
			return nil, fmt.Errorf("%w: alphabet entry %q is not symbol:weight", errUsage, pair)
		}
		sym, weight := pair[:i], pair[i+1:]
		if utf8.RuneCountInString(sym) != 1 {
			return nil, fmt.Errorf("%w: alphabet entry %q needs a single character symbol", errUsage, pair)
		}
		freq, err := strconv.ParseFloat(weight, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: alphabet entry %q: %v", errUsage, pair, err)
		}
		r, _ := utf8.DecodeRuneInString(sym)
		out = append(out, huffman.WeightedSymbol{Symbol: r, Freq: freq})
	}
	return out, nil
}

func runEncode(args []string, stdout io.Writer, cfg config.Config) error {
	fs := newFlagSet("encode")
	in := fs.String("in", "", "file to encode")
	tablePath := fs.String("table", "", "code table output file")
	streamPath := fs.String("stream", "", "encoded stream output file")
	format := fs.String("format", cfg.Format, "file format")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *in == "" || *tablePath == "" || *streamPath == "" {
		return fmt.Errorf("%w: encode: -in, -table and -stream are required", errUsage)
	}
	c, err := codec.Get(*format)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%s: input is not valid UTF-8", *in)
	}

	tree, err := huffman.BuildTree(huffman.CountFrequencies(string(data)))
	if err != nil {
		return fmt.Errorf("%s: %w", *in, err)
	}
	table := huffman.GenerateCodes(tree)
	stream, err := huffman.EncodeString(string(data), table)
	if err != nil {
		return err
	}
	if err := codec.SaveTable(*tablePath, c, table); err != nil {
		return err
	}
	if err := codec.SaveStream(*streamPath, c, stream); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "encoded %d symbols into %d bits with %d codes\n", stream.Symbols, len(stream.Bits), table.Len())
	return nil
}

func runDecode(args []string, stdout io.Writer, cfg config.Config) error {
	fs := newFlagSet("decode")
	tablePath := fs.String("table", "", "code table file")
	streamPath := fs.String("stream", "", "encoded stream file")
	format := fs.String("format", cfg.Format, "file format")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *tablePath == "" || *streamPath == "" {
		return fmt.Errorf("%w: decode: -table and -stream are required", errUsage)
	}
	c, err := codec.Get(*format)
	if err != nil {
		return err
	}

	decoded, err := decodeFiles(*tablePath, *streamPath, c)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, decoded)
	return err
}

// decodeFiles reloads a saved table and stream and decodes through a rebuilt tree
func decodeFiles(tablePath, streamPath string, c codec.Codec) (string, error) {
	table, err := codec.LoadTable(tablePath, c)
	if err != nil {
		return "", err
	}
	stream, err := codec.LoadStream(streamPath, c)
	if err != nil {
		return "", err
	}
	tree, err := huffman.TreeFromCodes(table)
	if err != nil {
		return "", fmt.Errorf("%s: %w", tablePath, err)
	}
	symbols, err := huffman.DecodeStream(stream, tree)
	if err != nil {
		return "", fmt.Errorf("%s: %w", streamPath, err)
	}
	return string(symbols), nil
}

func runServe(args []string, cfg config.Config) error {
	fs := newFlagSet("serve")
	fs.StringVar(&cfg.Port, "port", cfg.Port, "listen port")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logg := logger.New()

	tableRepo, closeRepo, err := openRepo(context.Background(), cfg, logg)
	if err != nil {
		return err
	}
	defer closeRepo()

	tableSvc := service.NewTableService(tableRepo, logg)
	tableH := handler.NewTableHandler(tableSvc)

	r := gin.Default()
	router.Register(r, router.Dependencies{
		TableHandler: tableH,
	})

	addr := ":" + cfg.Port
	logg.Infof("starting server at %s", addr)
	return r.Run(addr)
}

func openRepo(ctx context.Context, cfg config.Config, logg logger.Logger) (repo.TableRepo, func(), error) {
	if cfg.DatabaseURL == "" {
		logg.Infof("using in-memory table repository")
		return repo.NewTableRepoInMemory(), func() {}, nil
	}

	c, err := codec.Get(cfg.Format)
	if err != nil {
		return nil, nil, err
	}
	maxConns, err := cfg.MaxConns()
	if err != nil {
		return nil, nil, err
	}
	pool, err := repo.Open(ctx, cfg.DatabaseURL, repo.PoolOptions{MaxConns: maxConns, MaxConnLifetime: time.Hour})
	if err != nil {
		return nil, nil, err
	}
	if err := repo.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	logg.Infof("using PostgreSQL table repository, tables stored as %s", c.Name())
	return repo.NewTableRepoPostgres(pool, c), pool.Close, nil
}
