package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/uiforge/designlint/internal/database"
	"github.com/uiforge/designlint/internal/model"
	"github.com/uiforge/designlint/internal/rules"
	"github.com/uiforge/designlint/internal/scanner"
)

// ScanStep discovers and parses the target's source files.
type ScanStep struct {
	// Scanner performs discovery and parsing.
	Scanner *scanner.Scanner
}

// Name returns the step name.
func (s *ScanStep) Name() string { return "scan" }

// Do runs the scanner and registers a FileResult per parsed file.
func (s *ScanStep) Do(ctx context.Context, state *State) error {
	files, err := s.Scanner.Scan(ctx)
	if err != nil {
		return err
	}
	state.Files = files
	for _, f := range files {
		state.Report.AddFileResult(&model.FileResult{
			Path:        f.Path,
			Fingerprint: database.Fingerprint([]byte(f.Content)),
		})
	}
	return nil
}

// ApprovalStep resolves inline coding approvals against the history
// database. In recording mode it saves an approval for every scanned file;
// otherwise it looks up whether each file's current content is approved.
type ApprovalStep struct {
	// DB is the history database. A nil DB makes this step a no-op.
	DB *database.HistoryDB

	// Record saves approvals instead of looking them up.
	Record bool
}

// Name returns the step name.
func (s *ApprovalStep) Name() string { return "approvals" }

// Do records or resolves approvals for all scanned files.
func (s *ApprovalStep) Do(ctx context.Context, state *State) error {
	if s.DB == nil {
		return nil
	}
	for _, fr := range state.Report.Files {
		if s.Record {
			if err := s.DB.SaveApproval(ctx, fr.Path, fr.Fingerprint); err != nil {
				return err
			}
			state.Approved[fr.Path] = true
			continue
		}
		approved, err := s.DB.IsApproved(ctx, fr.Path, fr.Fingerprint)
		if err != nil {
			return err
		}
		if approved {
			state.Approved[fr.Path] = true
		}
	}
	return nil
}

// DirPolicy returns per-directory adjustments for a relative file path:
// additional disabled rule IDs and whether inline styles are allowed
// without an approval.
type DirPolicy func(path string) (disabled []string, allowInline bool)

// RulesStep evaluates the rule engine against every scanned file.
// Files are checked concurrently under a configurable limit.
type RulesStep struct {
	// Engine is the configured rule engine.
	Engine *rules.Engine

	// Tokens is the active design token set.
	Tokens *model.TokenSet

	// Concurrency limits parallel file checks. Values below one fall
	// back to serial evaluation.
	Concurrency int

	// InlineEnforced promotes inline findings to errors, overriding
	// approvals.
	InlineEnforced bool

	// Policy supplies per-directory overrides; may be nil.
	Policy DirPolicy
}

// Name returns the step name.
func (s *RulesStep) Name() string { return "rules" }

// Do fans rule evaluation out across files and merges findings into the
// report in deterministic file order.
//
// Design decision: We collect per-file findings into an indexed slice and
// merge after the errgroup completes rather than locking the report per
// finding. Findings stay ordered by file regardless of goroutine timing.
func (s *RulesStep) Do(ctx context.Context, state *State) error {
	limit := s.Concurrency
	if limit < 1 {
		limit = 1
	}

	perFile := make([][]model.Finding, len(state.Files))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range state.Files {
		i, file := i, file
		g.Go(func() error {
			data := &rules.CheckData{
				File:           file,
				Tokens:         s.Tokens,
				InlineEnforced: s.InlineEnforced,
				InlineApproved: state.Approved[file.Path],
			}

			var disabled map[string]bool
			if s.Policy != nil {
				ids, allowInline := s.Policy(file.Path)
				if len(ids) > 0 {
					disabled = make(map[string]bool, len(ids))
					for _, id := range ids {
						disabled[id] = true
					}
				}
				if allowInline && !s.InlineEnforced {
					data.InlineApproved = true
				}
			}

			findings, err := s.Engine.Check(gctx, data)
			if err != nil {
				return fmt.Errorf("rule evaluation failed for %s: %w", file.Path, err)
			}
			if disabled != nil {
				kept := findings[:0]
				for _, f := range findings {
					if !disabled[f.Rule] {
						kept = append(kept, f)
					}
				}
				findings = kept
			}

			mu.Lock()
			perFile[i] = findings
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, findings := range perFile {
		for _, f := range findings {
			state.Report.AddFinding(f)
		}
	}
	state.Report.RulesRun = s.Engine.RuleIDs()
	return nil
}

// ScoreStep finalizes per-file and overall compliance scores.
type ScoreStep struct{}

// Name returns the step name.
func (s *ScoreStep) Name() string { return "score" }

// Do computes the scores and pass flag.
func (s *ScoreStep) Do(_ context.Context, state *State) error {
	state.Report.Finalize()
	return nil
}

// PersistStep saves the finalized report to the history database.
type PersistStep struct {
	// DB is the history database. A nil DB makes this step a no-op.
	DB *database.HistoryDB
}

// Name returns the step name.
func (s *PersistStep) Name() string { return "persist" }

// Do saves the report.
func (s *PersistStep) Do(ctx context.Context, state *State) error {
	if s.DB == nil {
		return nil
	}
	if _, err := s.DB.SaveReport(ctx, state.Report); err != nil {
		return fmt.Errorf("failed to persist report: %w", err)
	}
	return nil
}
