package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand" //nolint:gosec // intentional use for reproducible benchmarks
	"net/http"
	_ "net/http/pprof" //nolint:gosec // intentional profiling endpoint
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"time"

	"github.com/felixge/fgprof"

	"github.com/meigma/faidx"
)

type config struct {
	mode       string
	fastaPath  string
	indexPath  string
	records    int
	recordLen  int
	lineBases  int
	span       int
	duration   time.Duration
	iterations int
	pprofAddr  string
	cpuProfile string
	memProfile string
	traceFile  string
	fgProfile  string
	tempDir    string
	keepTemp   bool
	randomSeed int64
	verbose    bool
}

//nolint:unused // sink variables prevent compiler optimizations in profiling
var (
	sinkBytes []byte
	sinkCount int
)

//nolint:gocognit,gocyclo // main function complexity is acceptable for CLI tool
func main() {
	cfg := parseFlags()

	if cfg.pprofAddr != "" {
		go func() {
			log.Printf("pprof listening on %s", cfg.pprofAddr)
			//nolint:gosec // intentional pprof server without timeouts for profiling
			if err := http.ListenAndServe(cfg.pprofAddr, nil); err != nil {
				log.Printf("pprof server error: %v", err)
			}
		}()
	}

	fastaPath, indexPath := cfg.fastaPath, cfg.indexPath
	if fastaPath == "" {
		dir, cleanup, err := setupTempDir(cfg)
		if err != nil {
			log.Fatal(err)
		}
		if cleanup != nil {
			defer cleanup() //nolint:errcheck // cleanup errors are non-fatal in profiler
		}
		fastaPath, indexPath, err = makeFasta(dir, cfg)
		if err != nil {
			log.Fatal(err) //nolint:gocritic // exitAfterDefer is intentional - cleanup is best-effort
		}
	}

	opts := []faidx.Option{faidx.WithBufferSize(cfg.span)}
	if cfg.verbose {
		opts = append(opts, faidx.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	var (
		fa  *faidx.Fasta
		err error
	)
	if indexPath == "" {
		fa, err = faidx.OpenFasta(fastaPath, opts...)
	} else {
		fa, err = faidx.Open(indexPath, fastaPath, opts...)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer fa.Close()

	var stopFG func() error
	if cfg.fgProfile != "" {
		fgFile, fgErr := os.Create(cfg.fgProfile)
		if fgErr != nil {
			log.Fatal(fgErr)
		}
		stopFG = fgprof.Start(fgFile, fgprof.FormatPprof)
		defer func() {
			if err := stopFG(); err != nil {
				log.Printf("fgprof stop error: %v", err)
			}
			_ = fgFile.Close()
		}()
	}

	if cfg.cpuProfile != "" {
		cpuFile, cpuErr := os.Create(cfg.cpuProfile)
		if cpuErr != nil {
			log.Fatal(cpuErr)
		}
		if cpuErr = pprof.StartCPUProfile(cpuFile); cpuErr != nil {
			log.Fatal(cpuErr)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}()
	}

	if cfg.traceFile != "" {
		traceFile, traceErr := os.Create(cfg.traceFile)
		if traceErr != nil {
			log.Fatal(traceErr)
		}
		if traceErr = trace.Start(traceFile); traceErr != nil {
			log.Fatal(traceErr)
		}
		defer func() {
			trace.Stop()
			_ = traceFile.Close()
		}()
	}

	stats, err := runProfile(cfg, fa)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile != "" {
		runtime.GC()
		f, err := os.Create(cfg.memProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal(err)
		}
		_ = f.Close()
	}

	fmt.Printf("mode=%s ops=%d bytes=%d elapsed=%s throughput=%.2f MB/s\n",
		cfg.mode,
		stats.ops,
		stats.bytes,
		stats.elapsed,
		float64(stats.bytes)/(1024*1024)/stats.elapsed.Seconds(),
	)
}

type profileStats struct {
	ops     int
	bytes   int64
	elapsed time.Duration
}

type interval struct {
	name       string
	start, end uint64
}

// picker draws random intervals of at most span bases inside non-empty records.
type picker struct {
	entries []faidx.Entry
	span    uint64
	rng     *rand.Rand
}

func newPicker(fa *faidx.Fasta, span int, seed int64) (*picker, error) {
	var entries []faidx.Entry
	for e := range fa.Index().Entries() {
		if e.Length > 0 {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return nil, errors.New("no non-empty records to query")
	}
	return &picker{
		entries: entries,
		span:    uint64(max(span, 1)), //nolint:gosec // clamped positive
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // intentional for reproducible benchmarks
	}, nil
}

func (p *picker) next() interval {
	e := p.entries[p.rng.Intn(len(p.entries))]
	start := uint64(p.rng.Int63n(int64(e.Length))) //nolint:gosec // record lengths fit in int64
	return interval{name: e.Name, start: start, end: min(start+p.span, e.Length)}
}

//nolint:gocognit,gocyclo // complexity is inherent to multi-mode profiler dispatch
func runProfile(cfg config, fa *faidx.Fasta) (profileStats, error) {
	start := time.Now()
	ops := 0
	var byteCount int64

	shouldContinue := func() bool {
		if cfg.iterations > 0 {
			return ops < cfg.iterations
		}
		return time.Since(start) < cfg.duration
	}

	switch cfg.mode {
	case "digests":
		for shouldContinue() {
			digests, err := fa.Digests(context.Background())
			if err != nil {
				return profileStats{}, err
			}
			sinkCount = len(digests)
			byteCount += fa.Size()
			ops++
		}
	case "sequence":
		names := fa.Names()
		rng := rand.New(rand.NewSource(cfg.randomSeed)) //nolint:gosec // intentional for reproducible benchmarks
		for shouldContinue() {
			seq, err := fa.Sequence(names[rng.Intn(len(names))])
			if err != nil {
				return profileStats{}, err
			}
			sinkBytes = seq
			byteCount += int64(len(seq))
			ops++
		}
	default:
		p, err := newPicker(fa, cfg.span, cfg.randomSeed)
		if err != nil {
			return profileStats{}, err
		}
		var dst []byte
		for shouldContinue() {
			iv := p.next()
			var out []byte
			switch cfg.mode {
			case "query":
				out, err = fa.Query(iv.name, iv.start, iv.end)
			case "view":
				out, err = fa.View(iv.name, iv.start, iv.end)
			case "append-query":
				dst, err = fa.AppendQuery(dst[:0], iv.name, iv.start, iv.end)
				out = dst
			case "query-truncated":
				out, err = fa.QueryTruncated(iv.name, iv.start, iv.start+p.span)
			default:
				return profileStats{}, fmt.Errorf("unknown mode %q", cfg.mode)
			}
			if err != nil {
				return profileStats{}, err
			}
			sinkBytes = out
			byteCount += int64(len(out))
			ops++
		}
	}

	return profileStats{
		ops:     ops,
		bytes:   byteCount,
		elapsed: time.Since(start),
	}, nil
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.mode, "mode", "query", "mode: query, view, append-query, query-truncated, sequence, digests")
	flag.StringVar(&cfg.fastaPath, "fasta", "", "existing FASTA file to profile (generated when empty)")
	flag.StringVar(&cfg.indexPath, "index", "", "index file for -fasta (default: <fasta>.fai)")
	flag.IntVar(&cfg.records, "records", 24, "number of generated records")
	flag.IntVar(&cfg.recordLen, "record-len", 4<<20, "bases per generated record")
	flag.IntVar(&cfg.lineBases, "line-bases", 60, "bases per line in generated records")
	flag.IntVar(&cfg.span, "span", 1000, "bases per query")
	flag.StringVar(&cfg.fgProfile, "fgprofile", "", "write fgprof (wall clock) profile to file")
	flag.DurationVar(&cfg.duration, "duration", 10*time.Second, "duration to run (ignored if iterations > 0)")
	flag.IntVar(&cfg.iterations, "iterations", 0, "number of iterations to run")
	flag.StringVar(&cfg.pprofAddr, "pprof-addr", "", "pprof listen address (e.g. :6060)")
	flag.StringVar(&cfg.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	flag.StringVar(&cfg.memProfile, "memprofile", "", "write heap profile to file")
	flag.StringVar(&cfg.traceFile, "trace", "", "write trace to file")
	flag.StringVar(&cfg.tempDir, "temp-dir", "", "directory to use for generated data")
	flag.BoolVar(&cfg.keepTemp, "keep-temp", false, "keep temp dir after run")
	flag.Int64Var(&cfg.randomSeed, "seed", 1, "random seed")
	flag.BoolVar(&cfg.verbose, "v", false, "log open and close diagnostics to stderr")
	flag.Parse()
	if cfg.recordLen < 0 {
		log.Fatalf("record-len: must not be negative, got %d", cfg.recordLen)
	}
	if cfg.lineBases <= 0 {
		log.Fatalf("line-bases: must be positive, got %d", cfg.lineBases)
	}
	return cfg
}

//nolint:gocritic // hugeParam acceptable for config struct in CLI tool
func setupTempDir(cfg config) (string, func() error, error) {
	if cfg.tempDir != "" {
		return cfg.tempDir, nil, os.MkdirAll(cfg.tempDir, 0o755) //nolint:gosec // 0o755 is intentional for profiler temp dirs
	}
	dir, err := os.MkdirTemp("", "faidx-profiler-*")
	if err != nil {
		return "", nil, err
	}
	if cfg.keepTemp {
		log.Printf("keeping temp dir %s", dir)
		return dir, nil, nil
	}
	return dir, func() error { return os.RemoveAll(dir) }, nil
}

// makeFasta writes random records and their index into dir.
//
//nolint:gocritic // hugeParam acceptable for config struct in CLI tool
func makeFasta(dir string, cfg config) (fastaPath, indexPath string, err error) {
	const alphabet = "ACGT"

	fastaPath = filepath.Join(dir, "profile.fa")
	indexPath = fastaPath + faidx.IndexSuffix

	f, err := os.Create(fastaPath)
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	w := bufio.NewWriterSize(f, 1<<20)

	idx := faidx.NewIndex()
	rng := rand.New(rand.NewSource(cfg.randomSeed)) //nolint:gosec // intentional use for reproducible benchmarks
	line := make([]byte, cfg.lineBases+1)
	recordLen := uint64(cfg.recordLen) //nolint:gosec // flag value
	lineBases := uint64(cfg.lineBases) //nolint:gosec // validated positive
	var offset uint64
	for r := range cfg.records {
		header := fmt.Sprintf(">seq%03d\n", r)
		if _, err := w.WriteString(header); err != nil {
			return "", "", err
		}
		offset += uint64(len(header))
		idx.Insert(faidx.Entry{
			Name:      fmt.Sprintf("seq%03d", r),
			Length:    recordLen,
			Offset:    offset,
			LineBases: lineBases,
			LineWidth: lineBases + 1,
		})
		for written := 0; written < cfg.recordLen; written += cfg.lineBases {
			n := min(cfg.lineBases, cfg.recordLen-written)
			for i := range n {
				line[i] = alphabet[rng.Intn(len(alphabet))]
			}
			line[n] = '\n'
			if _, err := w.Write(line[:n+1]); err != nil {
				return "", "", err
			}
			offset += uint64(n + 1) //nolint:gosec // positive
		}
	}
	if err := w.Flush(); err != nil {
		return "", "", err
	}

	var sb []byte
	for e := range idx.Entries() {
		sb = append(sb, e.String()...)
		sb = append(sb, '\n')
	}
	if err := os.WriteFile(indexPath, sb, 0o644); err != nil { //nolint:gosec // index files are world-readable
		return "", "", err
	}
	return fastaPath, indexPath, nil
}
