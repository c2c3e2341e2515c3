package ledger

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// ErrUnreadable 파일을 표 형태로 읽을 수 없음
var ErrUnreadable = errors.New("스프레드시트를 읽을 수 없습니다")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadSpreadsheet 업로드 파일을 원시 그리드로 읽는다. xlsx 는 첫 번째 비어 있지 않은 시트,
// csv 는 UTF-8 또는 EUC-KR 인코딩을 지원한다.
func LoadSpreadsheet(content []byte, filename string) ([][]string, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: 빈 파일", ErrUnreadable)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".xls":
		return nil, fmt.Errorf("%w: xls 형식은 지원하지 않습니다. xlsx 로 저장 후 업로드하세요", ErrUnreadable)
	case ext == ".xlsx" || ext == ".xlsm" || bytes.HasPrefix(content, []byte("PK")):
		return loadWorkbook(content)
	default:
		return loadCSV(content)
	}
}

func loadWorkbook(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, fmt.Errorf("%w: 데이터가 있는 시트가 없습니다", ErrUnreadable)
}

func loadCSV(content []byte) ([][]string, error) {
	var r io.Reader
	if utf8.Valid(content) {
		r = bytes.NewReader(bytes.TrimPrefix(content, utf8BOM))
	} else {
		r = transform.NewReader(bytes.NewReader(content), korean.EUCKR.NewDecoder())
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: 빈 파일", ErrUnreadable)
	}
	return rows, nil
}

// Load 파일을 읽어 헤더 탐지, 컬럼 정규화, 행 변환까지 수행한다
func Load(content []byte, filename string) ([]Row, int, error) {
	grid, err := LoadSpreadsheet(content, filename)
	if err != nil {
		return nil, 0, err
	}
	rows, dropped := ParseRows(NormalizeColumns(NewTable(grid)))
	return rows, dropped, nil
}
