package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestExtractText_PlainTextIsIdentity(t *testing.T) {
	inputs := []string{
		"",
		"Experienced Python developer, 5 years, AWS certified",
		"multi\nline\r\nresume\twith tabs",
		"unicode: naïve café 日本語 🚀",
	}
	for _, in := range inputs {
		got, err := ExtractText(context.Background(), []byte(in), "text/plain")
		if err != nil {
			t.Fatalf("extract %q: %v", in, err)
		}
		if got != in {
			t.Fatalf("expected identity decode, got %q want %q", got, in)
		}
	}
}

func TestExtractText_IgnoresMimeParameters(t *testing.T) {
	got, err := ExtractText(context.Background(), []byte("hello"), "Text/Plain; charset=utf-8")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "hello" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractText_WordTypesUnsupported(t *testing.T) {
	for _, mt := range []string{MimeDOC, MimeDOCX, "application/vnd.ms-word.document.macroEnabled.12"} {
		text, err := ExtractText(context.Background(), []byte("PK\x03\x04 not parsed"), mt)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat for %s, got %v", mt, err)
		}
		if text != "" {
			t.Fatalf("expected no text for %s, got %q", mt, text)
		}
	}
}

// onePagePDF builds a single-page PDF that draws text in Helvetica.
func onePagePDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractText_PDFReturnsText(t *testing.T) {
	got, err := ExtractText(context.Background(), onePagePDF("Python AWS"), MimePDF)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(got, "Python AWS") {
		t.Fatalf("expected embedded words in %q", got)
	}
}

func TestExtractText_PDFIgnoresMimeParameters(t *testing.T) {
	got, err := ExtractText(context.Background(), onePagePDF("Kubernetes"), "Application/PDF; name=cv.pdf")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(got, "Kubernetes") {
		t.Fatalf("expected embedded words in %q", got)
	}
}

func TestExtractText_CorruptPDFFails(t *testing.T) {
	for _, payload := range [][]byte{nil, []byte("%PDF-1.7\nnot really a pdf"), []byte("garbage")} {
		text, err := ExtractText(context.Background(), payload, MimePDF)
		if !errors.Is(err, ErrExtractionFailed) {
			t.Fatalf("expected ErrExtractionFailed, got %v", err)
		}
		if text != "" {
			t.Fatalf("expected no partial text, got %q", text)
		}
	}
}

func TestExtractText_UnknownTypeFallsBackToUTF8(t *testing.T) {
	got, err := ExtractText(context.Background(), []byte("# Resume\nGo, SQL"), "text/markdown")
	if err != nil {
		t.Fatalf("expected fallback decode, got %v", err)
	}
	if got != "# Resume\nGo, SQL" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractText_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractText(ctx, []byte("x"), MimeText); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDetectMimeType(t *testing.T) {
	cases := []struct {
		declared string
		file     string
		want     string
	}{
		{"application/pdf", "cv.bin", MimePDF},
		{"", "cv.PDF", MimePDF},
		{"application/octet-stream", "cv.txt", MimeText},
		{"", "cv.docx", MimeDOCX},
		{"", "cv.doc", MimeDOC},
		{"text/plain; charset=utf-8", "cv", MimeText},
	}
	for _, tc := range cases {
		if got := DetectMimeType(tc.declared, tc.file); got != tc.want {
			t.Fatalf("DetectMimeType(%q, %q) = %q, want %q", tc.declared, tc.file, got, tc.want)
		}
	}
}

func TestIsAllowedUploadType(t *testing.T) {
	for _, mt := range AllowedUploadTypes {
		if !IsAllowedUploadType(mt) {
			t.Fatalf("expected %s to be allowed", mt)
		}
	}
	if IsAllowedUploadType("image/png") {
		t.Fatal("expected image/png to be rejected")
	}
}
