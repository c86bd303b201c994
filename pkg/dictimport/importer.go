// Package dictimport converts a vendor-defined zipped JSON dictionary
// bundle into the compact on-disk format pkg/bundle describes. Bank
// parsing and glossary compression fan out across a bounded worker pool; a
// single goroutine owns the output buffer and offset map and drains
// completed work in submission order, generalizing the channel-driven
// background loader pattern this module's ambient stack follows elsewhere.
package dictimport

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/kotobaserve/kotoba/internal/byteio"
	"github.com/kotobaserve/kotoba/internal/logging"
	"github.com/kotobaserve/kotoba/pkg/bundle"
	"github.com/kotobaserve/kotoba/pkg/config"
	"github.com/kotobaserve/kotoba/pkg/mph"
	"github.com/kotobaserve/kotoba/pkg/zstdcodec"
	"github.com/klauspost/compress/zstd"
)

var log = logging.New("dictimport")

type bankJob struct {
	index int
	kind  string // "term" or "meta"
	name  string
	raw   []byte
	err   error
}

type parsedTerm struct {
	record bundle.TermRecord
}

type parsedMeta struct {
	record bundle.MetaRecord
}

type bankResult struct {
	index int
	terms []parsedTerm
	metas []parsedMeta
	err   error
}

// Import reads the zip archive at zipPath and writes a bundle directory
// under outRoot, named after the dictionary's title. cfg controls worker
// pool size and zstd compression level.
func Import(zipPath, outRoot string, cfg config.ImportConfig) (*Result, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("dictimport: open %s: %w", zipPath, err)
	}
	defer zr.Close()

	var indexFile *zip.File
	var stylesFile *zip.File
	var termBankFiles, metaBankFiles, tagBankFiles, mediaFiles []*zip.File

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(f.Name)
		switch {
		case name == "index.json":
			indexFile = f
		case name == bundle.FileStyles:
			stylesFile = f
		case strings.HasPrefix(name, "term_meta_bank_"):
			metaBankFiles = append(metaBankFiles, f)
		case strings.HasPrefix(name, "term_bank_"):
			termBankFiles = append(termBankFiles, f)
		case strings.HasPrefix(name, "tag_bank_"):
			tagBankFiles = append(tagBankFiles, f)
		default:
			mediaFiles = append(mediaFiles, f)
		}
	}
	if indexFile == nil {
		return nil, fmt.Errorf("dictimport: %s has no index.json", zipPath)
	}

	idxBytes, err := readZipFile(indexFile)
	if err != nil {
		return nil, fmt.Errorf("dictimport: reading index.json: %w", err)
	}
	var idx indexJSON
	if err := json.Unmarshal(idxBytes, &idx); err != nil {
		return nil, fmt.Errorf("dictimport: parsing index.json: %w", err)
	}

	outDir := filepath.Join(outRoot, sanitizeTitle(idx.Title))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("dictimport: creating %s: %w", outDir, err)
	}

	result := &Result{Dir: outDir}

	if stylesFile != nil {
		if data, err := readZipFile(stylesFile); err == nil {
			if err := os.WriteFile(filepath.Join(outDir, bundle.FileStyles), data, 0o644); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("dictimport: writing styles.css: %w", err))
			}
		} else {
			result.Errors = append(result.Errors, fmt.Errorf("dictimport: reading styles.css: %w", err))
		}
	}

	infoBytes, err := json.Marshal(bundle.Info{Title: idx.Title, Revision: idx.Revision, Format: idx.Format})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("dictimport: encoding info.json: %w", err))
	} else if err := os.WriteFile(filepath.Join(outDir, bundle.FileInfo), infoBytes, 0o644); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("dictimport: writing info.json: %w", err))
	}

	for _, f := range tagBankFiles {
		data, err := readZipFile(f)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("dictimport: reading %s: %w", f.Name, err))
			continue
		}
		tags, err := parseTagBank(data)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("dictimport: parsing %s: %w", f.Name, err))
			continue
		}
		result.Tags = append(result.Tags, tags...)
	}

	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	level := zstdcodec.LevelFromConfig(cfg.ZstdLevel)

	jobs, jobErrs := buildJobs(termBankFiles, metaBankFiles)
	for _, e := range jobErrs {
		result.Errors = append(result.Errors, e)
	}

	results := runPool(jobs, workerCount, level)

	blobWriter := byteio.NewWriter(1 << 20)
	offsetsByKey := make(map[string][]uint64)
	var keyOrder []string
	seenKey := make(map[string]bool)
	addKey := func(k string) {
		if !seenKey[k] {
			seenKey[k] = true
			keyOrder = append(keyOrder, k)
		}
	}

	apply := func(res bankResult) {
		if res.err != nil {
			result.Errors = append(result.Errors, res.err)
			return
		}
		for _, pt := range res.terms {
			pos := uint64(blobWriter.Len())
			bundle.EncodeTerm(blobWriter, pt.record)
			addKey(pt.record.Expression)
			offsetsByKey[pt.record.Expression] = append(offsetsByKey[pt.record.Expression], pos)
			if pt.record.Reading != pt.record.Expression {
				addKey(pt.record.Reading)
				offsetsByKey[pt.record.Reading] = append(offsetsByKey[pt.record.Reading], pos)
			}
			result.TermCount++
		}
		for _, pm := range res.metas {
			pos := uint64(blobWriter.Len())
			bundle.EncodeMeta(blobWriter, pm.record)
			addKey(pm.record.Expression)
			offsetsByKey[pm.record.Expression] = append(offsetsByKey[pm.record.Expression], pos)
			result.MetaCount++
		}
	}

	pending := make(map[int]bankResult)
	next := 0
	for res := range results {
		pending[res.index] = res
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			apply(r)
			delete(pending, next)
			next++
		}
	}
	if len(pending) > 0 {
		leftover := make([]int, 0, len(pending))
		for k := range pending {
			leftover = append(leftover, k)
		}
		sort.Ints(leftover)
		for _, k := range leftover {
			apply(pending[k])
		}
	}

	regionBase := blobWriter.Len()
	positions := bundle.EncodeOffsetIndex(blobWriter, keyOrder, offsetsByKey)

	if err := os.WriteFile(filepath.Join(outDir, bundle.FileBlobs), blobWriter.Buf(), 0o644); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("dictimport: writing blobs.bin: %w", err))
	}

	table, err := mph.Build(keyOrder)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("dictimport: building perfect hash: %w", err))
		result.Success = false
		return result, nil
	}

	dense := make([]uint64, table.Len())
	for _, k := range keyOrder {
		h := table.Evaluate(k)
		dense[h] = uint64(regionBase) + uint64(positions[k])
	}
	offsetsWriter := byteio.NewWriter(8 * len(dense))
	for _, v := range dense {
		offsetsWriter.U64(v)
	}
	if err := os.WriteFile(filepath.Join(outDir, bundle.FileOffsets), offsetsWriter.Buf(), 0o644); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("dictimport: writing offsets.bin: %w", err))
	}
	if err := os.WriteFile(filepath.Join(outDir, bundle.FileHash), table.Serialize(), 0o644); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("dictimport: writing hash.mph: %w", err))
	}

	mediaWriter := byteio.NewWriter(0)
	var mediaEntries []bundle.MediaEntry
	for _, f := range mediaFiles {
		data, err := readZipFile(f)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("dictimport: reading media %s: %w", f.Name, err))
			continue
		}
		mediaEntries = append(mediaEntries, bundle.MediaEntry{
			Name:   f.Name,
			Offset: uint64(mediaWriter.Len()),
			Size:   uint32(len(data)),
		})
		mediaWriter.Bytes(data)
	}
	if err := os.WriteFile(filepath.Join(outDir, bundle.FileMedia), mediaWriter.Buf(), 0o644); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("dictimport: writing media.bin: %w", err))
	}
	mediaIdxWriter := byteio.NewWriter(0)
	bundle.EncodeMediaIndex(mediaIdxWriter, mediaEntries)
	if err := os.WriteFile(filepath.Join(outDir, bundle.FileMediaIndex), mediaIdxWriter.Buf(), 0o644); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("dictimport: writing media_index.bin: %w", err))
	}
	result.MediaCount = len(mediaEntries)

	result.Success = len(result.Errors) == 0
	if !result.Success {
		log.Warnf("import of %s completed with %d error(s)", zipPath, len(result.Errors))
	}
	return result, nil
}

func buildJobs(termFiles, metaFiles []*zip.File) ([]bankJob, []error) {
	var jobs []bankJob
	var errs []error
	idx := 0
	for _, f := range termFiles {
		data, err := readZipFile(f)
		if err != nil {
			errs = append(errs, fmt.Errorf("dictimport: reading %s: %w", f.Name, err))
			continue
		}
		jobs = append(jobs, bankJob{index: idx, kind: "term", name: f.Name, raw: data})
		idx++
	}
	for _, f := range metaFiles {
		data, err := readZipFile(f)
		if err != nil {
			errs = append(errs, fmt.Errorf("dictimport: reading %s: %w", f.Name, err))
			continue
		}
		jobs = append(jobs, bankJob{index: idx, kind: "meta", name: f.Name, raw: data})
		idx++
	}
	return jobs, errs
}

func runPool(jobs []bankJob, workerCount int, level zstd.EncoderLevel) <-chan bankResult {
	jobsCh := make(chan bankJob)
	resultsCh := make(chan bankResult)
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobsCh {
				resultsCh <- processJob(job, level)
			}
		}()
	}

	go func() {
		for _, j := range jobs {
			jobsCh <- j
		}
		close(jobsCh)
	}()

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	return resultsCh
}

func processJob(job bankJob, level zstd.EncoderLevel) bankResult {
	switch job.kind {
	case "term":
		terms, err := parseTermBank(job.raw, level)
		if err != nil {
			return bankResult{index: job.index, err: fmt.Errorf("dictimport: parsing %s: %w", job.name, err)}
		}
		return bankResult{index: job.index, terms: terms}
	case "meta":
		metas, err := parseMetaBank(job.raw)
		if err != nil {
			return bankResult{index: job.index, err: fmt.Errorf("dictimport: parsing %s: %w", job.name, err)}
		}
		return bankResult{index: job.index, metas: metas}
	default:
		return bankResult{index: job.index, err: fmt.Errorf("dictimport: unknown job kind %q", job.kind)}
	}
}

func parseTermBank(raw []byte, level zstd.EncoderLevel) ([]parsedTerm, error) {
	var entries []termTuple
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	out := make([]parsedTerm, 0, len(entries))
	for _, e := range entries {
		reading := e.Reading
		if reading == "" {
			reading = e.Expression
		}
		glossaryBytes := []byte(e.Glossary)
		compressed, err := zstdcodec.Compress(glossaryBytes, level)
		if err != nil {
			return nil, fmt.Errorf("compressing glossary for %q: %w", e.Expression, err)
		}
		out = append(out, parsedTerm{record: bundle.TermRecord{
			Expression:     e.Expression,
			Reading:        reading,
			GlossaryZstd:   compressed,
			GlossarySize:   len(glossaryBytes),
			DefinitionTags: e.DefinitionTags,
			Rules:          e.Rules,
			TermTags:       e.TermTags,
		}})
	}
	return out, nil
}

func parseMetaBank(raw []byte) ([]parsedMeta, error) {
	var entries []metaTuple
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	out := make([]parsedMeta, 0, len(entries))
	for _, e := range entries {
		out = append(out, parsedMeta{record: bundle.MetaRecord{
			Expression: e.Expression,
			Mode:       e.Mode,
			Data:       []byte(e.Data),
		}})
	}
	return out, nil
}

func parseTagBank(raw []byte) ([]TagInfo, error) {
	var entries []tagTuple
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	out := make([]TagInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, TagInfo{
			Name:     e.Name,
			Category: e.Category,
			Order:    intOrZero(e.Order),
			Notes:    e.Notes,
			Score:    intOrZero(e.Score),
		})
	}
	return out, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func sanitizeTitle(title string) string {
	if title == "" {
		return "dictionary"
	}
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	return r.Replace(title)
}
