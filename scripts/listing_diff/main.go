// Command listing_diff replays directory and feed queries against two
// deployments and reports any difference in status or ordering. It is run
// before promoting a build so a change to filtering or sorting never ships
// unnoticed.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/community-hub-api/internal/discovery"
)

// target is one request replayed against both deployments.
type target struct {
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

type comparison struct {
	Target            target
	BaselineStatus    int
	CandidateStatus   int
	StatusMatch       bool
	BodyMatch         bool
	Error             error
	BaselineDuration  time.Duration
	CandidateDuration time.Duration
}

func (c comparison) breaking() bool {
	return c.Target.Critical && (c.Error != nil || !c.StatusMatch || !c.BodyMatch)
}

func (c comparison) differs() bool {
	return c.Error != nil || !c.StatusMatch || !c.BodyMatch
}

// volatileMeta lists envelope meta keys that legitimately differ per request.
var volatileMeta = []string{"processing_time_ms", "request_id", "cache_hit"}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		baseline    string
		candidate   string
		prefix      string
		targetsPath string
		timeout     time.Duration
	)
	cmd := &cobra.Command{
		Use:          "listing_diff",
		Short:        "Compare member and feed listings between two deployments",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logr, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logr.Sync() //nolint:errcheck

			targets := defaultTargets(prefix)
			if targetsPath != "" {
				loaded, err := loadTargets(targetsPath)
				if err != nil {
					return fmt.Errorf("load targets: %w", err)
				}
				targets = loaded
			}

			client := &http.Client{Timeout: timeout}
			var results []comparison
			breaking, optional := 0, 0
			for _, t := range targets {
				res := compareTarget(client, baseline, candidate, t)
				switch {
				case res.breaking():
					breaking++
				case res.differs():
					optional++
				}
				results = append(results, res)
			}

			printReport(cmd.OutOrStdout(), results)
			logr.Info("listing diff finished", zap.Int("targets", len(results)), zap.Int("breaking", breaking), zap.Int("optional", optional))
			if breaking > 0 {
				return fmt.Errorf("%d breaking differences", breaking)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseline, "baseline", "http://localhost:8080", "base URL of the deployment considered correct")
	cmd.Flags().StringVar(&candidate, "candidate", "http://localhost:8081", "base URL of the deployment under test")
	cmd.Flags().StringVar(&prefix, "api-prefix", "/api/v1", "API prefix used to build the default targets")
	cmd.Flags().StringVar(&targetsPath, "targets", "", "JSON file with explicit targets; defaults to every sort key for members and feed")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	return cmd
}

// defaultTargets covers every sort key for both listings plus a filtered query.
// Ordering is critical; the filtered queries are informative.
func defaultTargets(prefix string) []target {
	prefix = "/" + strings.Trim(prefix, "/")
	var out []target
	for _, scope := range []string{"members", "feed"} {
		for _, key := range discovery.SortKeys() {
			q := url.Values{"sort": {string(key)}, "limit": {"100"}}
			out = append(out, target{Path: prefix + "/" + scope + "?" + q.Encode(), Critical: true})
		}
		q := url.Values{"role": {"mentor"}, "rating": {"3+"}, "availability": {"available"}}
		out = append(out, target{Path: prefix + "/" + scope + "?" + q.Encode()})
	}
	return out
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func compareTarget(client *http.Client, baseline, candidate string, tgt target) comparison {
	res := comparison{Target: tgt}
	baseStatus, baseBody, baseDur, err := fetch(client, baseline, tgt.Path)
	if err != nil {
		res.Error = fmt.Errorf("baseline: %w", err)
		return res
	}
	candStatus, candBody, candDur, err := fetch(client, candidate, tgt.Path)
	if err != nil {
		res.Error = fmt.Errorf("candidate: %w", err)
		return res
	}
	res.BaselineStatus, res.CandidateStatus = baseStatus, candStatus
	res.BaselineDuration, res.CandidateDuration = baseDur, candDur
	res.StatusMatch = baseStatus == candStatus
	res.BodyMatch = bodiesEqual(baseBody, candBody)
	return res
}

func fetch(client *http.Client, base, path string) (int, []byte, time.Duration, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	start := time.Now()
	resp, err := client.Get(strings.TrimRight(base, "/") + path)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// bodiesEqual compares two envelopes ignoring volatile meta keys. Array order
// is significant.
func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}
	var aj, bj map[string]interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	stripVolatile(aj)
	stripVolatile(bj)
	return reflect.DeepEqual(aj, bj)
}

func stripVolatile(envelope map[string]interface{}) {
	meta, ok := envelope["meta"].(map[string]interface{})
	if !ok {
		return
	}
	for _, key := range volatileMeta {
		delete(meta, key)
	}
	if len(meta) == 0 {
		delete(envelope, "meta")
	}
}

func printReport(w io.Writer, results []comparison) {
	fmt.Fprintln(w, "Listing Diff Report")
	fmt.Fprintln(w, "===================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if res.differs() {
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] GET %s\n", status, res.Target.Path)
		if res.Error != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Error)
			continue
		}
		fmt.Fprintf(w, "  Baseline: %d (%s) | Candidate: %d (%s)\n", res.BaselineStatus, res.BaselineDuration, res.CandidateStatus, res.CandidateDuration)
		fmt.Fprintf(w, "  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
	}
}
