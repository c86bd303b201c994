// Command kotoba is the command-line front end over the dictionary store,
// deinflector, text preprocessor, and lookup coordinator: subcommands
// import, deinflect, preprocess, query, lookup, and freq are thin printers
// over the core, plus an ancillary serve mode for long-running callers.
//
// These subcommands are not part of the core's compatibility surface; they
// exist to exercise it from a shell.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/kotobaserve/kotoba/internal/logging"
	"github.com/kotobaserve/kotoba/internal/pathutil"
	"github.com/kotobaserve/kotoba/pkg/config"
	"github.com/kotobaserve/kotoba/pkg/deinflect"
	"github.com/kotobaserve/kotoba/pkg/dictimport"
	"github.com/kotobaserve/kotoba/pkg/dictreader"
	"github.com/kotobaserve/kotoba/pkg/ipc"
	"github.com/kotobaserve/kotoba/pkg/lookup"
	"github.com/kotobaserve/kotoba/pkg/textproc"
)

const version = "0.1.0"

var cliLog = logging.New("kotoba")

func main() {
	installSignalHandler()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	if os.Args[1] == "-version" || os.Args[1] == "--version" {
		printVersionBanner()
		return
	}

	resolver, err := pathutil.NewResolver()
	if err != nil {
		cliLog.Fatalf("resolving paths: %v", err)
	}
	cfgPath, err := resolver.ConfigPath("config.toml")
	if err != nil {
		cliLog.Fatalf("resolving config path: %v", err)
	}
	cfg := config.Load(cfgPath)
	logging.SetLevel(config.ParseLevel(cfg.Server.LogLevel))

	args := os.Args[2:]
	switch os.Args[1] {
	case "import":
		cmdImport(args, cfg)
	case "deinflect":
		cmdDeinflect(args)
	case "preprocess":
		cmdPreprocess(args)
	case "query":
		cmdQuery(args)
	case "lookup":
		cmdLookup(args, cfg)
	case "freq":
		cmdFreq(args)
	case "serve":
		cmdServe(args, cfg)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: kotoba <import|deinflect|preprocess|query|lookup|freq|serve> [args]")
}

func installSignalHandler() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cliLog.Info("shutting down")
		os.Exit(0)
	}()
}

func printVersionBanner() {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	fmt.Println(style.Render("kotoba") + " " + version)
}

func cmdImport(args []string, cfg *config.Config) {
	if len(args) < 2 {
		cliLog.Fatal("usage: kotoba import <zip> <out-dir>")
	}
	result, err := dictimport.Import(args[0], args[1], cfg.Import)
	if err != nil {
		cliLog.Fatalf("import failed: %v", err)
	}
	printJSON(result)
	if !result.Success {
		os.Exit(1)
	}
}

func cmdDeinflect(args []string) {
	if len(args) < 1 {
		cliLog.Fatal("usage: kotoba deinflect <word>")
	}
	printJSON(deinflect.Deinflect(args[0]))
}

func cmdPreprocess(args []string) {
	if len(args) < 1 {
		cliLog.Fatal("usage: kotoba preprocess <word>")
	}
	printJSON(textproc.Process(args[0]))
}

func cmdQuery(args []string) {
	if len(args) < 2 {
		cliLog.Fatal("usage: kotoba query <bundle> <word>")
	}
	r := dictreader.New()
	if err := r.MountTerm(args[0]); err != nil {
		cliLog.Fatalf("mounting %s: %v", args[0], err)
	}
	defer r.Close()
	printJSON(r.QueryTerm(args[1]))
}

func cmdLookup(args []string, cfg *config.Config) {
	if len(args) < 2 {
		cliLog.Fatal("usage: kotoba lookup <bundle>... <word>")
	}
	word := args[len(args)-1]
	bundles := args[:len(args)-1]

	r := dictreader.New()
	for _, b := range bundles {
		if err := r.MountTerm(b); err != nil {
			cliLog.Fatalf("mounting %s: %v", b, err)
		}
	}
	defer r.Close()

	results := lookup.Lookup(r, word, cfg.Lookup.ScanLength, cfg.Lookup.MaxResults)
	printJSON(results)
}

func cmdFreq(args []string) {
	if len(args) < 3 {
		cliLog.Fatal("usage: kotoba freq <bundle> <word> <reading>")
	}
	r := dictreader.New()
	if err := r.MountFrequency(args[0]); err != nil {
		cliLog.Fatalf("mounting %s: %v", args[0], err)
	}
	defer r.Close()

	results := []*dictreader.TermResult{{Expression: args[1], Reading: args[2]}}
	r.AttachFrequencies(results)
	printJSON(results)
}

func cmdServe(args []string, cfg *config.Config) {
	_ = args
	r := dictreader.New()
	defer r.Close()

	conn := ipc.NewConn(os.Stdin, os.Stdout)
	cliLog.Info("serve mode ready, awaiting framed requests on stdin")
	for {
		var req ipc.Request
		if err := conn.ReadFrame(&req); err != nil {
			if err == io.EOF {
				cliLog.Info("stdin closed, exiting serve mode")
				return
			}
			cliLog.Fatalf("reading request frame: %v", err)
		}

		switch req.Op {
		case "mount":
			resp := handleMount(r, req.Mount)
			if err := conn.WriteFrame(ipc.Response{Op: "mount", Mount: resp}); err != nil {
				cliLog.Fatalf("writing mount response: %v", err)
			}
		case "lookup":
			resp := handleLookup(r, req.Lookup, cfg)
			if err := conn.WriteFrame(ipc.Response{Op: "lookup", Lookup: resp}); err != nil {
				cliLog.Fatalf("writing lookup response: %v", err)
			}
		default:
			cliLog.Warnf("serve: unknown op %q, ignoring", req.Op)
		}
	}
}

func handleMount(r *dictreader.Reader, req *ipc.MountRequest) *ipc.MountResponse {
	if req == nil {
		return &ipc.MountResponse{Error: "mount request missing payload"}
	}
	resp := &ipc.MountResponse{ID: req.ID}
	var err error
	switch req.Kind {
	case "term":
		err = r.MountTerm(req.Path)
	case "freq":
		err = r.MountFrequency(req.Path)
	case "pitch":
		err = r.MountPitch(req.Path)
	default:
		err = fmt.Errorf("unknown mount kind %q", req.Kind)
	}
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.OK = true
	return resp
}

func handleLookup(r *dictreader.Reader, req *ipc.LookupRequest, cfg *config.Config) *ipc.LookupResponse {
	if req == nil {
		return &ipc.LookupResponse{Error: "lookup request missing payload"}
	}
	scanLength := req.ScanLength
	if scanLength == 0 {
		scanLength = cfg.Lookup.ScanLength
	}
	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = cfg.Lookup.MaxResults
	}

	results := lookup.Lookup(r, req.Text, scanLength, maxResults)
	payload := make([]ipc.ResultPayload, 0, len(results))
	for _, res := range results {
		glossaries := make([]ipc.GlossaryPayload, 0, len(res.Glossaries))
		for _, g := range res.Glossaries {
			glossaries = append(glossaries, ipc.GlossaryPayload{DictName: g.DictName, Data: g.Data})
		}
		frequencies := make([]ipc.FrequencyPayload, 0, len(res.Frequencies))
		for _, f := range res.Frequencies {
			entries := make([]ipc.FrequencyEntry, 0, len(f.Entries))
			for _, e := range f.Entries {
				entries = append(entries, ipc.FrequencyEntry{Value: e.Value, Display: e.Display})
			}
			frequencies = append(frequencies, ipc.FrequencyPayload{DictName: f.DictName, Entries: entries})
		}
		pitches := make([]ipc.PitchPayload, 0, len(res.Pitches))
		for _, p := range res.Pitches {
			pitches = append(pitches, ipc.PitchPayload{DictName: p.DictName, Reading: p.Reading, Positions: p.Positions})
		}
		payload = append(payload, ipc.ResultPayload{
			Expression:  res.Expression,
			Reading:     res.Reading,
			Rules:       res.Rules,
			Glossaries:  glossaries,
			Frequencies: frequencies,
			Pitches:     pitches,
		})
	}
	return &ipc.LookupResponse{ID: req.ID, Results: payload}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		cliLog.Fatalf("encoding output: %v", err)
	}
}
