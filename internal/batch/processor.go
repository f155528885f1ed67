package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"canvas-cropper/internal/imageio"
	"canvas-cropper/internal/logging"
	"canvas-cropper/internal/transform"

	"github.com/bytedance/sonic"
)

var batchLog = logging.Module("batch")

// Job is one image to place and export.
type Job struct {
	Source string `json:"source"`
	// Width and Height override the configured canvas when both are set.
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Ops    []Op   `json:"ops"`
	Output string `json:"output,omitempty"`
}

// LoadJobs reads a JSON array of jobs.
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", path, err)
	}
	var jobs []Job
	if err := sonic.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("batch: parse %s: %w", path, err)
	}
	return jobs, nil
}

// Config holds all shared settings for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Format    imageio.Format
	Engine    transform.Options
	Workers   int
	// Sources is shared by all workers; Run creates one when nil.
	Sources *imageio.Cache
}

// Result holds the outcome of processing one job.
type Result struct {
	Source  string
	Output  string
	Success bool
	Error   string
	State   transform.State
}

// Run processes all jobs using a worker pool. Each job gets its own
// engine. Jobs not started when ctx is canceled fail with ctx's error.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if cfg.Sources == nil {
		cfg.Sources = imageio.NewCache()
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					batchLog.Info().
						Int64("done", p).
						Int("total", total).
						Float64("rate", float64(p)/elapsed).
						Msg("progress")
				}
			}
		}
	}()

	names, nameErrs := outputNames(jobs, cfg.Format)

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				if nameErrs[idx] != nil {
					results[idx] = failed(jobs[idx], nameErrs[idx])
				} else {
					results[idx] = processJob(ctx, cfg, jobs[idx], names[idx])
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

// outputNames picks each job's output file name. Jobs without an Output
// get source base name plus the format extension, suffixed with the job
// index when another job would get the same name. An explicit Output that
// an earlier job already claimed is an error for the later job.
func outputNames(jobs []Job, f imageio.Format) ([]string, []error) {
	names := make([]string, len(jobs))
	errs := make([]error, len(jobs))

	defaults := make(map[string]int)
	for i, job := range jobs {
		if job.Output == "" {
			base := filepath.Base(job.Source)
			names[i] = strings.TrimSuffix(base, filepath.Ext(base)) + f.Ext()
			defaults[names[i]]++
		}
	}

	claimed := make(map[string]int)
	for i, job := range jobs {
		name := job.Output
		if name == "" {
			name = names[i]
			if defaults[name] > 1 {
				name = strings.TrimSuffix(name, f.Ext()) + "_" + strconv.Itoa(i) + f.Ext()
			}
		}
		key := filepath.Clean(name)
		if prev, ok := claimed[key]; ok {
			errs[i] = fmt.Errorf("batch: output %q already used by job %d", name, prev)
			continue
		}
		claimed[key] = i
		names[i] = name
	}
	return names, errs
}

func failed(job Job, err error) Result {
	batchLog.Warn().Err(err).Str("source", job.Source).Msg("job failed")
	return Result{Source: job.Source, Error: err.Error()}
}

func processJob(ctx context.Context, cfg Config, job Job, name string) Result {
	fail := func(err error) Result {
		return failed(job, err)
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	src := job.Source
	if !filepath.IsAbs(src) && cfg.InputDir != "" {
		src = filepath.Join(cfg.InputDir, src)
	}
	handle, err := cfg.Sources.Load(ctx, src)
	if err != nil {
		return fail(err)
	}

	opts := cfg.Engine
	if job.Width > 0 && job.Height > 0 {
		opts.Resolution.Width = job.Width
		opts.Resolution.Height = job.Height
	}
	eng := transform.New(opts)
	eng.SetImage(handle)

	if err := Apply(eng, job.Ops); err != nil {
		return fail(err)
	}

	outPath, err := imageio.WriteFile(cfg.OutputDir, name, eng.ExportRaster(), cfg.Format)
	if err != nil {
		return fail(err)
	}

	return Result{
		Source:  job.Source,
		Output:  outPath,
		Success: true,
		State:   eng.State(),
	}
}
