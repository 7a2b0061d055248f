package graph

import (
	"context"
	"strconv"
	"testing"
	"time"
)

func TestBacklinkScan_FindsIncomingLinks(t *testing.T) {
	gw := newFakeGateway()
	gw.write("lonely.md", "# Lonely\n\nNo outgoing links.\n")
	gw.write("hub.md", "Points at [[lonely]] from elsewhere.\n")
	s := NewSession(gw)

	g, err := s.BuildGraph(context.Background(), BuildOptions{FocusFile: "lonely.md"})
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}
	if len(g.Nodes) != 1 {
		t.Fatalf("forward build from a link-less focus should load only it, got %v", nodeIDs(g.Nodes))
	}

	scan := s.StartBacklinkScan(context.Background(), g, nil)

	var updates []BacklinkUpdate
	for u := range scan.Updates() {
		updates = append(updates, u)
	}
	if !scan.Wait() {
		t.Fatal("scan should run to completion")
	}

	if len(updates) != 1 {
		t.Fatalf("expected one backlink update, got %d", len(updates))
	}
	if updates[0].Node.ID != "doc-hub.md" {
		t.Errorf("expected doc-hub.md, got %s", updates[0].Node.ID)
	}
	if !hasEdge(updates[0].Edges, "doc-hub.md", "doc-lonely.md") {
		t.Error("missing backlink edge hub -> lonely")
	}
}

func TestBacklinkScan_SkipsLoadedPathsAndNonLinkers(t *testing.T) {
	gw := scenarioGateway(t)
	s := NewSession(gw)

	g, err := s.BuildGraph(context.Background(), BuildOptions{FocusFile: "readme.md", MaxDepth: 2})
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	scan := s.StartBacklinkScan(context.Background(), g, nil)
	var updates []BacklinkUpdate
	for u := range scan.Updates() {
		updates = append(updates, u)
	}
	scan.Wait()

	// Everything linking into the loaded set is already loaded, and
	// standalone.md has no links at all.
	if len(updates) != 0 {
		t.Errorf("expected no backlink updates, got %d", len(updates))
	}
}

func TestBacklinkScan_ReportsScanningProgress(t *testing.T) {
	gw := scenarioGateway(t)
	s := NewSession(gw)

	g, err := s.BuildGraph(context.Background(), BuildOptions{FocusFile: "readme.md", MaxDepth: 1})
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	progressCh := make(chan Progress, 64)
	scan := s.StartBacklinkScan(context.Background(), g, func(p Progress) { progressCh <- p })
	for range scan.Updates() {
	}
	scan.Wait()
	close(progressCh)

	var scanning []Progress
	for p := range progressCh {
		if p.Phase == PhaseScanning {
			scanning = append(scanning, p)
		}
	}
	if len(scanning) == 0 {
		t.Fatal("corpus enumeration should report the scanning phase")
	}

	// Mid-walk updates carry no total; only the closing summary does
	for _, p := range scanning[:len(scanning)-1] {
		if p.Total != 0 {
			t.Errorf("total must stay unknown during the walk, got %d", p.Total)
		}
	}
	last := scanning[len(scanning)-1]
	if last.Total == 0 || last.Current != last.Total {
		t.Errorf("final scanning update should summarize the walk, got %d/%d", last.Current, last.Total)
	}
	if last.Total != 4 {
		t.Errorf("scenario corpus holds 4 markdown files, got total %d", last.Total)
	}
}

func TestBacklinkScan_CancelPreventsCompletion(t *testing.T) {
	gw := newFakeGateway()
	gw.write("focus.md", "# Focus\n")
	// Enough candidates that cancellation lands before exhaustion:
	// the scan parks on the unread updates channel.
	for i := 0; i < 200; i++ {
		gw.write(pathForIndex(i), linkToFocus(i))
	}
	s := NewSession(gw)

	g, err := s.BuildGraph(context.Background(), BuildOptions{FocusFile: "focus.md"})
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	scan := s.StartBacklinkScan(context.Background(), g, nil)

	// Take one update so the scan is mid-corpus, then cancel.
	select {
	case <-scan.Updates():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the first update")
	}
	scan.Cancel()

	for range scan.Updates() {
	}
	if scan.Wait() {
		t.Error("a cancelled scan must never report completion")
	}
}

func TestBacklinkScan_CancelIsIdempotent(t *testing.T) {
	gw := newFakeGateway()
	gw.write("focus.md", "# Focus\n")
	s := NewSession(gw)

	g, _ := s.BuildGraph(context.Background(), BuildOptions{FocusFile: "focus.md"})
	scan := s.StartBacklinkScan(context.Background(), g, nil)

	scan.Cancel()
	scan.Cancel()
	for range scan.Updates() {
	}
	scan.Wait()
}

func TestBacklinkScan_ContextCancellationStopsScan(t *testing.T) {
	gw := newFakeGateway()
	gw.write("focus.md", "# Focus\n")
	for i := 0; i < 200; i++ {
		gw.write(pathForIndex(i), linkToFocus(i))
	}
	s := NewSession(gw)

	g, _ := s.BuildGraph(context.Background(), BuildOptions{FocusFile: "focus.md"})

	ctx, cancel := context.WithCancel(context.Background())
	scan := s.StartBacklinkScan(ctx, g, nil)

	select {
	case <-scan.Updates():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the first update")
	}
	cancel()

	for range scan.Updates() {
	}
	if scan.Wait() {
		t.Error("context cancellation must not look like completion")
	}
}

func pathForIndex(i int) string {
	// Spread candidates over two directories to exercise the walk
	if i%2 == 0 {
		return "notes/a" + strconv.Itoa(i) + ".md"
	}
	return "notes/deep/b" + strconv.Itoa(i) + ".md"
}

// linkToFocus writes a wiki link that resolves to the root focus.md
// from the directory pathForIndex placed the candidate in
func linkToFocus(i int) string {
	if i%2 == 0 {
		return "Link to [[../focus]].\n"
	}
	return "Link to [[../../focus]].\n"
}
