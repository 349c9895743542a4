package telegram

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"essay-proxy/api/internal/prompt"
	"essay-proxy/api/internal/store"
	"essay-proxy/api/internal/task"
	"essay-proxy/api/internal/util"
)

const (
	correctTimeout = 180 * time.Second
	cacheMaxAge    = 24 * time.Hour
)

var httpc = &http.Client{Timeout: 60 * time.Second}

// handleEssay treats any plain text message as a free-essay submission.
func (r *Router) handleEssay(cid int64, text string) {
	r.send(cid, "解答を受け取りました。添削中…")

	p := task.Payload{TaskKind: string(task.KindFreeEssay), Answer: text}
	blocks, err := task.Normalize(task.KindFreeEssay, p, 1<<20)
	if err != nil {
		r.sendError(cid, err.Error())
		return
	}
	system := prompt.Compose(task.KindFreeEssay, nil, "", prompt.DialectKansai)
	r.correctAndReply(cid, task.KindFreeEssay, system, blocks, r.MaxTokens, hashSubmission(system, text))
}

// handlePhoto transcribes the largest preview of the photo.
func (r *Router) handlePhoto(cid int64, photos []tgbotapi.PhotoSize) {
	r.send(cid, "写真を受け取りました。書き起こし中…")

	ph := photos[len(photos)-1]
	tf, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		r.sendError(cid, "ファイルを取得できませんでした: "+err.Error())
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, tf.FilePath)
	img, err := download(url)
	if err != nil {
		r.sendError(cid, "写真をダウンロードできませんでした: "+err.Error())
		return
	}

	p := task.Payload{
		TaskKind:  string(task.KindDiagramOCR),
		ImageData: util.MakeDataURL(util.SniffMimeHTTP(img), img),
	}
	blocks, err := task.Normalize(task.KindDiagramOCR, p, 1<<20)
	if err != nil {
		r.sendError(cid, err.Error())
		return
	}
	system := prompt.Compose(task.KindDiagramOCR, nil, "", prompt.DialectKansai)
	r.correctAndReply(cid, task.KindDiagramOCR, system, blocks, r.OCRMaxTokens, hashSubmission(system, string(img)))
}

func (r *Router) correctAndReply(cid int64, kind task.Kind, system string, blocks []task.ContentBlock, maxTokens int, hash string) {
	eng := r.EngManager.Get(cid)

	ctx, cancel := context.WithTimeout(context.Background(), correctTimeout)
	defer cancel()

	if r.Corrections != nil {
		if row, err := r.Corrections.FindByHash(ctx, hash, eng.Name(), eng.GetModel(), cacheMaxAge); err == nil {
			r.reply(cid, row.Correction)
			return
		}
	}

	text, err := eng.Correct(ctx, system, blocks, maxTokens)
	if err != nil {
		log.Printf("bot: %s via %s failed: %v", kind, eng.Name(), err)
		r.sendError(cid, "添削サービスでエラーが発生しました。しばらくしてからもう一度お試しください。")
		return
	}
	if text == "" {
		r.sendError(cid, "結果が空でした。もう一度お試しください。")
		return
	}

	if r.Corrections != nil {
		if _, err := r.Corrections.Save(ctx, store.CorrectionRow{
			ChatID:         cid,
			SubmissionHash: hash,
			TaskKind:       string(kind),
			Engine:         eng.Name(),
			Model:          eng.GetModel(),
			Correction:     text,
		}); err != nil {
			log.Printf("bot: cache save failed: %v", err)
		}
	}

	r.reply(cid, text)
}

func hashSubmission(system, body string) string {
	h := sha256.Sum256([]byte(system + "\x00" + body))
	return hex.EncodeToString(h[:])
}

func download(url string) ([]byte, error) {
	resp, err := httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}
