package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/speciescleaner/speciescleaner"
)

const maxPreviewRows = 200

func main() {
	fyneApp := app.NewWithID("studio.yashubu.speciescleaner")
	win := fyneApp.NewWindow("Species Cleaner (学名クリーニング)")
	win.Resize(fyne.NewSize(1024, 768))

	cfg, err := speciescleaner.LoadConfig("")
	if err != nil {
		showFatalError(win, fmt.Errorf("設定の読み込みに失敗しました: %w", err))
		return
	}

	loggerBinding := binding.NewString()
	logCapture := newLogCapture(loggerBinding, 300)
	logger := log.New(io.MultiWriter(os.Stdout, logCapture), "", log.LstdFlags)

	service := speciescleaner.NewService(cfg, logger)

	cfgMu := sync.Mutex{}
	saveConfig := func() {
		cfgMu.Lock()
		defer cfgMu.Unlock()
		if err := speciescleaner.SaveConfig("", cfg); err != nil {
			logger.Printf("設定の保存に失敗しました: %v", err)
		}
	}
	defer saveConfig()

	// Loaded dataset state. The cleaned flag keeps a cleaned table from being
	// cleaned twice before saving.
	var (
		tableMu sync.Mutex
		table   *speciescleaner.Table
		cols    speciescleaner.TableColumns
		choices []columnChoice
		cleaned bool
	)

	statusLabel := widget.NewLabel("準備完了")

	// Input file controls
	inputEntry := widget.NewEntry()
	inputEntry.SetPlaceHolder("metadata.csv")
	if cfg.InputPath != "" {
		inputEntry.SetText(cfg.InputPath)
	}

	speciesSelect := widget.NewSelect(nil, nil)
	genusSelect := widget.NewSelect(nil, nil)
	subspeciesSelect := widget.NewSelect(nil, nil)
	suffixSelect := widget.NewSelect(nil, nil)
	columnSelects := []*widget.Select{speciesSelect, genusSelect, subspeciesSelect, suffixSelect}

	// Report output
	reportLabel := widget.NewLabel("")
	reportLabel.Wrapping = fyne.TextWrapWord
	reportLabel.TextStyle = fyne.TextStyle{Monospace: true}
	reportScroll := container.NewVScroll(reportLabel)
	reportScroll.SetMinSize(fyne.NewSize(200, 200))

	// Classification preview
	var previewData [][]string
	previewTable := widget.NewTable(
		func() (int, int) {
			if len(previewData) == 0 {
				return 0, 0
			}
			return len(previewData), len(previewData[0])
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			if len(previewData) == 0 || id.Row >= len(previewData) || id.Col >= len(previewData[id.Row]) {
				return
			}
			label := obj.(*widget.Label)
			label.SetText(previewData[id.Row][id.Col])
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
			} else {
				label.TextStyle = fyne.TextStyle{}
			}
		},
	)

	updatePreview := func(records []speciescleaner.Record) {
		previewData = buildPreviewData(records)
		fyne.Do(func() {
			if len(previewData) > 0 {
				for col := range previewData[0] {
					previewTable.SetColumnWidth(col, 220)
				}
			}
			previewTable.Refresh()
		})
	}

	// loadTable reads the input file and refreshes the column pickers from
	// its header.
	loadTable := func(path string) error {
		t, err := speciescleaner.ReadTable(path)
		if err != nil {
			return err
		}
		resolved, err := t.ResolveColumns(speciescleaner.ColumnConfig{})
		if err != nil {
			// Column mapping may still be chosen by hand.
			resolved = speciescleaner.TableColumns{Species: -1, Genus: -1, Subspecies: -1, Suffix: -1}
		}
		newChoices := buildColumnChoices(t)
		tableMu.Lock()
		table = t
		cols = resolved
		choices = newChoices
		cleaned = false
		tableMu.Unlock()

		labels := choiceLabels(newChoices)
		fyne.Do(func() {
			for _, sel := range columnSelects {
				sel.Options = labels
			}
			speciesSelect.SetSelected(labelForColumn(newChoices, resolved.Species))
			genusSelect.SetSelected(labelForColumn(newChoices, resolved.Genus))
			subspeciesSelect.SetSelected(labelForColumn(newChoices, resolved.Subspecies))
			suffixSelect.SetSelected(labelForColumn(newChoices, resolved.Suffix))
			statusLabel.SetText(fmt.Sprintf("%d件読み込みました", len(t.Rows)))
		})
		logger.Printf("Loaded %d records from %s", len(t.Rows), path)
		return nil
	}

	browseBtn := widget.NewButton("参照...", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				showError(win, err)
				return
			}
			if rc == nil {
				return
			}
			defer rc.Close()
			path := rc.URI().Path()
			inputEntry.SetText(path)
			cfgMu.Lock()
			cfg.InputPath = path
			cfgMu.Unlock()
			saveConfig()
			go func() {
				if err := loadTable(path); err != nil {
					showError(win, err)
				}
			}()
		}, win)
		fd.SetFilter(storageFilter([]string{".csv", ".tsv"}))
		fd.Show()
	})

	cleanBtn := widget.NewButton("クリーニング実行", nil)
	cleanBtn.Disable()

	analyzeBtn := widget.NewButton("解析", nil)
	analyzeBtn.OnTapped = func() {
		path := strings.TrimSpace(inputEntry.Text)
		if path == "" {
			showError(win, fmt.Errorf("入力ファイルを指定してください"))
			return
		}
		// Snapshot the picker selections on the main thread; loadTable below
		// repopulates the selects from a goroutine.
		tableMu.Lock()
		colCfg := selectedColumnConfig(choices,
			speciesSelect.Selected, genusSelect.Selected,
			subspeciesSelect.Selected, suffixSelect.Selected)
		tableMu.Unlock()
		analyzeBtn.Disable()
		statusLabel.SetText("解析中...")
		go func() {
			if err := loadTable(path); err != nil {
				fyne.Do(func() {
					analyzeBtn.Enable()
					statusLabel.SetText("エラーが発生しました")
					showError(win, err)
				})
				return
			}
			tableMu.Lock()
			t := table
			resolved, err := t.ResolveColumns(colCfg)
			if err == nil {
				cols = resolved
			}
			tableMu.Unlock()
			if err != nil {
				fyne.Do(func() {
					analyzeBtn.Enable()
					statusLabel.SetText("エラーが発生しました")
					showError(win, err)
				})
				return
			}

			start := time.Now()
			report := service.Analyze(t, resolved)
			elapsed := time.Since(start)

			records := make([]speciescleaner.Record, 0, min(len(t.Rows), maxPreviewRows))
			for i := 0; i < len(t.Rows) && i < maxPreviewRows; i++ {
				rec := speciescleaner.Record{Species: t.Cell(i, resolved.Species)}
				if resolved.Genus >= 0 {
					rec.Genus = t.Cell(i, resolved.Genus)
				}
				records = append(records, speciescleaner.NormalizeRecord(rec))
			}
			updatePreview(records)

			fyne.Do(func() {
				reportLabel.SetText(report.Render())
				analyzeBtn.Enable()
				cleanBtn.Enable()
				statusLabel.SetText(fmt.Sprintf("%d件 %.2fs", report.Total, elapsed.Seconds()))
			})
		}()
	}

	saveCleaned := func(t *speciescleaner.Table) {
		fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil {
				showError(win, err)
				return
			}
			if uc == nil {
				return
			}
			defer uc.Close()
			comma := ','
			if strings.EqualFold(filepath.Ext(uc.URI().Name()), ".tsv") {
				comma = '\t'
			}
			if err := t.WriteTo(uc, comma); err != nil {
				showError(win, err)
				return
			}
			cfgMu.Lock()
			cfg.OutputPath = uc.URI().Path()
			cfgMu.Unlock()
			saveConfig()
			logger.Printf("Cleaned metadata saved to %s", uc.URI().Path())
		}, win)
		fd.SetFileName(filepath.Base(cfg.OutputPath))
		fd.SetFilter(storageFilter([]string{".csv", ".tsv"}))
		fd.Show()
	}

	cleanBtn.OnTapped = func() {
		tableMu.Lock()
		t := table
		resolved := cols
		alreadyCleaned := cleaned
		tableMu.Unlock()
		if t == nil {
			showError(win, fmt.Errorf("先に解析を実行してください"))
			return
		}
		if alreadyCleaned {
			saveCleaned(t)
			return
		}
		dialog.NewConfirm("確認", "クリーニングを実行しますか？", func(ok bool) {
			if !ok {
				logger.Printf("Cleaning cancelled")
				return
			}
			cleanBtn.Disable()
			statusLabel.SetText("クリーニング中...")
			go func() {
				stats := service.Clean(t, resolved)
				tableMu.Lock()
				cleaned = true
				tableMu.Unlock()
				fyne.Do(func() {
					reportLabel.SetText(stats.Render())
					cleanBtn.Enable()
					statusLabel.SetText(fmt.Sprintf("%d件変更しました", stats.Modified))
					saveCleaned(t)
				})
			}()
		}, win).Show()
	}

	// Quick test: classify pasted names without touching any file.
	quickInput := widget.NewMultiLineEntry()
	quickInput.SetPlaceHolder("学名を1行ずつ入力してください")
	quickInput.Wrapping = fyne.TextWrapWord
	quickGenus := widget.NewEntry()
	quickGenus.SetPlaceHolder("属名（任意）")
	quickBtn := widget.NewButton("単発テスト", func() {
		names := parseInputNames(quickInput.Text)
		if len(names) == 0 {
			showError(win, fmt.Errorf("入力がありません"))
			return
		}
		genus := normalize(quickGenus.Text)
		records := make([]speciescleaner.Record, len(names))
		for i, name := range names {
			records[i] = speciescleaner.Record{Species: name, Genus: genus}
		}
		go updatePreview(records)
	})

	logLabel := widget.NewLabelWithData(loggerBinding)
	logLabel.Wrapping = fyne.TextWrapWord
	logContainer := container.NewVScroll(logLabel)
	logContainer.SetMinSize(fyne.NewSize(200, 120))

	controls := container.NewVBox(
		container.NewVBox(
			widget.NewLabel("入力ファイル"),
			inputEntry,
			container.NewHBox(browseBtn, analyzeBtn, cleanBtn, statusLabel),
		),
		widget.NewSeparator(),
		container.NewVBox(
			widget.NewLabel("列の割り当て"),
			container.NewHBox(widget.NewLabel("種"), speciesSelect),
			container.NewHBox(widget.NewLabel("属"), genusSelect),
			container.NewHBox(widget.NewLabel("亜種"), subspeciesSelect),
			container.NewHBox(widget.NewLabel("サフィックス"), suffixSelect),
		),
		widget.NewSeparator(),
		container.NewVBox(
			widget.NewLabel("単発テスト"),
			quickInput,
			container.NewHBox(quickGenus, quickBtn),
		),
		widget.NewSeparator(),
		widget.NewLabel("ログ"),
		logContainer,
	)

	results := container.NewVSplit(previewTable, reportScroll)
	root := container.NewHSplit(controls, results)
	root.Offset = 0.4
	win.SetContent(root)

	win.ShowAndRun()
}

func showFatalError(win fyne.Window, err error) {
	content := widget.NewLabel(err.Error())
	win.SetContent(content)
	dialog.ShowError(err, win)
	win.ShowAndRun()
}

func showError(win fyne.Window, err error) {
	if err != nil {
		dialog.ShowError(err, win)
	}
}

func storageFilter(exts []string) storage.FileFilter {
	return storage.NewExtensionFileFilter(exts)
}

// buildPreviewData classifies records for display: original value alongside
// the extracted binomial, trinomial and suffix.
func buildPreviewData(records []speciescleaner.Record) [][]string {
	data := make([][]string, 1, len(records)+1)
	data[0] = []string{"species", "binomial", "trinomial", "suffix"}
	for _, rec := range records {
		res := speciescleaner.Classify(rec.Species, rec.Genus)
		data = append(data, []string{rec.Species, res.Binomial, res.Trinomial, res.Suffix})
	}
	return data
}

type logCapture struct {
	mu      sync.Mutex
	lines   []string
	limit   int
	binding binding.String
}

func newLogCapture(b binding.String, limit int) *logCapture {
	return &logCapture{binding: b, limit: limit}
}

func (l *logCapture) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	text := string(p)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	for _, part := range parts {
		if part == "" {
			continue
		}
		l.lines = append(l.lines, part)
	}
	if len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
	joined := strings.Join(l.lines, "\n")
	_ = l.binding.Set(joined)
	return len(p), nil
}
