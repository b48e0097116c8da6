package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/brogergvhs/mangasrc/internal/chapters"
	"github.com/brogergvhs/mangasrc/internal/config"
	"github.com/brogergvhs/mangasrc/internal/downloader"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/ui"
	"github.com/brogergvhs/mangasrc/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagChapter string
	flagRange   string
	flagList    string

	// runtime
	flagOutput         string
	flagImageWorkers   int
	flagChapterWorkers int
	flagKeepFolders    bool
	flagDryRun         bool
	flagSkipBroken     bool
	flagOverwrite      bool

	// headers/auth
	flagCookie       string
	flagCookieFile   string
	flagUserAgent    string
	flagNoCloudflare bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download <manga-url>",
		Short: "Download chapters of a title as CBZ files. Uses the selected config, overwritten by CLI flags",
		Args:  cobra.ExactArgs(1),
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagChapter, "chapter", "", "single chapter by number or exact name (e.g. 5 or \"Chapter 28.5\")")
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "inclusive range of chapter numbers (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "specific chapter numbers (e.g. 1,3,5)")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for CBZ files")
	downloadCmd.Flags().IntVar(&flagImageWorkers, "image-workers", 5, "parallel image downloads per chapter")
	downloadCmd.Flags().IntVar(&flagChapterWorkers, "chapter-workers", 2, "parallel chapter downloads")
	downloadCmd.Flags().BoolVar(&flagKeepFolders, "keep-folders", false, "keep temporary folders")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don't download")
	downloadCmd.Flags().BoolVar(&flagSkipBroken, "skip-broken", false, "skip failed images instead of failing the whole chapter")
	downloadCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "download chapters whose CBZ already exists")

	// headers/auth
	downloadCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	downloadCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	downloadCmd.Flags().BoolVar(&flagNoCloudflare, "no-cloudflare", false, "use the plain transport instead of the Cloudflare profile")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	s, err := openSession(config.Options{
		Output:       flagOutput,
		KeepFolders:  flagKeepFolders,
		SkipBroken:   flagSkipBroken,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		UserAgent:    flagUserAgent,
		NoCloudflare: flagNoCloudflare,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	cfg := s.cfg
	if cmd.Flags().Changed("image-workers") {
		cfg.ImageWorkers = flagImageWorkers
	}
	if cmd.Flags().Changed("chapter-workers") {
		cfg.ChapterWorkers = flagChapterWorkers
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	ctx := cmd.Context()
	manga := providers.Manga{URL: args[0]}

	list, err := s.client.Chapters(ctx, manga)
	if err != nil {
		return err
	}
	all := chapters.FromSource(list)

	selected := chapters.Filter(all, flagChapter, flagRange, flagList)
	if len(selected) == 0 {
		return fmt.Errorf("no chapters selected (%d available)", len(all))
	}

	if flagDryRun {
		fmt.Printf("Dry-run: %d of %d chapters selected.\n\n", len(selected), len(all))
		for _, ch := range selected {
			fmt.Printf("%4d) %s\n      %s\n", ch.Number, ch.Name, ch.URL)
		}
		return nil
	}

	detail, err := s.client.Details(ctx, manga)
	if err != nil {
		s.log.Warnf("no metadata for %s: %v\n", manga.URL, err)
	}

	pm := ui.NewProgress(os.Stdout)
	stats := &ui.Stats{}
	dl := downloader.New(s.http, cfg.SkipBroken)
	referer := s.src.BaseURL() + "/"
	start := time.Now()

	sem := make(chan struct{}, max(1, cfg.ChapterWorkers))
	var wg sync.WaitGroup

	for _, ch := range selected {
		cbzOut := ch.OutputCBZPath(cfg.Output)
		if _, err := os.Stat(cbzOut); err == nil && !flagOverwrite {
			s.log.Infof("Skipping %s, %s exists\n", ch.Name, filepath.Base(cbzOut))
			continue
		}

		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := downloadChapter(ctx, s, dl, pm, stats, ch, detail, referer); err != nil {
				stats.Failed.Add(1)
				s.log.Errorf("%s: %v\n", ch.Name, err)
			}
		}()
	}
	wg.Wait()
	pm.Wait()

	if ctx.Err() != nil {
		util.CleanupUnfinishedTempFolders(cfg.Output, s.log)
		return ctx.Err()
	}

	fmt.Println()
	stats.Print(os.Stdout, time.Since(start))
	fmt.Println("\nAll done.")

	return nil
}

func downloadChapter(
	ctx context.Context,
	s *session,
	dl *downloader.Downloader,
	pm *ui.Progress,
	stats *ui.Stats,
	ch chapters.Chapter,
	detail providers.MangaDetail,
	referer string,
) error {
	pages, err := s.client.Pages(ctx, ch.Chapter)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("no pages")
	}

	bar := pm.Chapter(fmt.Sprintf("Ch.%04d", ch.Number), len(pages))

	tmpFolder := filepath.Join(s.cfg.Output, ch.FolderName())
	files, bytes, err := dl.DownloadPages(ctx, pages, tmpFolder, referer, max(1, s.cfg.ImageWorkers), bar)
	if err != nil {
		_ = os.RemoveAll(tmpFolder)
		return err
	}

	info := &util.ComicInfo{
		Title:   ch.Name,
		Series:  detail.Title,
		Number:  strconv.Itoa(ch.Number),
		Writer:  detail.Author,
		Genre:   strings.Join(detail.Genres, ", "),
		Summary: detail.Description,
		Web:     providers.ResolveURL(s.src.BaseURL(), ch.URL),
	}
	if err := util.CreateCBZ(files, ch.OutputCBZPath(s.cfg.Output), info); err != nil {
		_ = os.RemoveAll(tmpFolder)
		return err
	}

	if !s.cfg.KeepFolders {
		if err := os.RemoveAll(tmpFolder); err != nil {
			s.log.Errorf("cleaning up %s: %v\n", tmpFolder, err)
		}
	}

	stats.TotalChapters.Add(1)
	stats.TotalImages.Add(int64(len(files)))
	stats.TotalBytes.Add(bytes)

	return nil
}
