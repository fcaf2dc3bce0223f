package analyzer

import (
	"bytes"
	"io"
	"testing"
)

func TestProgressReaderReportsFlooredMonotonicPercent(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte{'x'}, 300)
	var reported []int
	reader := newProgressReader(bytes.NewReader(payload), int64(len(payload)), func(percent int) {
		reported = append(reported, percent)
	})

	buf := make([]byte, 7)
	for {
		if _, err := reader.Read(buf); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("read failed: %v", err)
		}
	}

	if len(reported) == 0 {
		t.Fatal("no progress reported")
	}
	for i, percent := range reported {
		if percent < 0 || percent > 100 {
			t.Fatalf("percent out of range: %d", percent)
		}
		if i > 0 && percent <= reported[i-1] {
			t.Fatalf("progress repeated or decreased: %v", reported)
		}
	}
	if last := reported[len(reported)-1]; last != 100 {
		t.Fatalf("progress did not reach 100, got %d", last)
	}
	// floor semantics: 7 of 300 bytes is 2.33…%, reported as 2
	if reported[0] != 2 {
		t.Fatalf("expected first report of 2, got %d", reported[0])
	}
}

func TestProgressReaderNilCallback(t *testing.T) {
	t.Parallel()

	payload := []byte("small body")
	reader := newProgressReader(bytes.NewReader(payload), int64(len(payload)), nil)
	out, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatal("payload altered by progress reader")
	}
}
