package format

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 9, 5, 3, 0, time.UTC)

	tests := []struct {
		style string
		want  string
	}{
		{StyleDefault, "2025-03-07"},
		{StyleISO, "2025-03-07"},
		{StyleKorean, "2025년 03월 07일"},
		{StyleShort, "2025.03.07"},
		{"unknown", "2025-03-07"},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(d, tt.style))
		})
	}
}

func TestDatePattern(t *testing.T) {
	d := time.Date(2025, time.December, 31, 23, 59, 1, 0, time.UTC)

	assert.Equal(t, "2025-12-31", DatePattern(d, "YYYY-MM-DD"))
	assert.Equal(t, "2025/12/31 23:59:01", DatePattern(d, "YYYY/MM/DD HH:mm:ss"))
	assert.Equal(t, "31.12", DatePattern(d, "DD.MM"))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024.02.29", Date(got, StyleShort))

	got, err = ParseDate("2024-02-29T10:11:12Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "0", Number(0))
	assert.Equal(t, "999", Number(999))
	assert.Equal(t, "1,234,567", Number(1234567))
	assert.Equal(t, "-1,000", Number(-1000))
	assert.Equal(t, "1,234.5", Number(1234.5))
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "1,234원", Currency(1234))
	assert.Equal(t, "₩1,234", CurrencySymbol(1234, ""))
	assert.Equal(t, "$1,234", CurrencySymbol(1234, "$"))
}

func TestLargeCurrency(t *testing.T) {
	assert.Equal(t, "12.3억원", LargeCurrency(1_234_000_000))
	assert.Equal(t, "1.0억원", LargeCurrency(100_000_000))
	assert.Equal(t, "5,000만원", LargeCurrency(50_000_000))
	assert.Equal(t, "0만원", LargeCurrency(0))
}

func TestFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{-5, "0 Bytes"},
		{500, "500 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{5 * 1024 * 1024 * 1024, "5 GB"},
		{3 * 1024 * 1024 * 1024 * 1024 * 1024, "3072 TB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FileSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(10, 0))
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 150, Percentage(3, 2))
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, Badge{Class: "badge-primary", Label: "진행중"}, StatusBadge("in_progress"))
	assert.Equal(t, Badge{Class: "badge-danger", Label: "취소"}, StatusBadge("cancelled"))
	assert.Equal(t, Badge{Class: "badge-secondary", Label: "archived"}, StatusBadge("archived"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "K-라이스벨트", ProjectTypeLabel("k_rice_belt"))
	assert.Equal(t, "other", ProjectTypeLabel("other"))
	assert.Equal(t, "글로벌사업부", DepartmentLabel("gb"))
	assert.Equal(t, "hq", DepartmentLabel("hq"))
}

func TestToastIcon(t *testing.T) {
	assert.Equal(t, "✓", ToastIcon(KindSuccess))
	assert.Equal(t, "✕", ToastIcon(KindError))
	assert.Equal(t, "⚠", ToastIcon(KindWarning))
	assert.Equal(t, "ℹ", ToastIcon(KindInfo))
	assert.Equal(t, "ℹ", ToastIcon("bogus"))
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	assert.NotEqual(t, a, b)

	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
