package ops

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chopain/yomikae-sub001/internal/analyze"
	"github.com/chopain/yomikae-sub001/internal/article"
	"github.com/chopain/yomikae-sub001/internal/errors"
)

// scanPage is a hot-spring travel piece working in every test character:
// 湯, 水, 火, and 手紙 all appear in running prose.
const scanPage = `<!DOCTYPE html>
<html lang="ja">
<head><title>湯の町だより</title></head>
<body>
<article>
<h1>湯の町だより</h1>
<p>湯の町に着いたのは夕方だった。駅前の坂を上ると、あちこちの宿から湯けむりが立ちのぼっているのが見える。まずは宿に荷物を置き、さっそく大浴場へ向かった。源泉かけ流しの湯は思ったよりも熱く、水でうめながらゆっくりと肩までつかる。長旅の疲れが、指の先からほどけていくようだった。湯上がりに飲んだ冷たい水のうまさは、家の水道の水とは別物のように感じられた。</p>
<p>夜は囲炉裏のある食堂で夕食をとった。炭の火で山の幸をあぶりながら、宿の主人に町の歴史を聞く。この土地では昔から、湯治に来た客が世話になった宿へ礼状を送る習わしがあるそうで、帳場の壁には古い手紙が何通も飾られていた。墨で書かれた文字は読めない部分も多かったが、感謝の気持ちだけははっきりと伝わってきた。今では電子メールの時代だが、それでも年配の常連客は筆で手紙を書いてよこすのだという。</p>
<p>翌朝は早起きして、川沿いの遊歩道を歩いた。雪どけの水を集めた川は勢いよく流れ、岸のところどころから湯気が上がっている。川底から湯が湧いているのだと、散歩中の地元の人が教えてくれた。火山のふもとにあるこの町では、熱い湯と冷たい水がすぐ隣り合わせに存在している。宿に戻って朝湯に入り、朝食のあとでもう一度だけ湯につかってから、名残惜しく町をあとにした。</p>
</article>
</body>
</html>`

func newTestAnalyzer(t *testing.T) *analyze.Analyzer {
	t.Helper()
	analyzer, err := analyze.New()
	if err != nil {
		t.Fatalf("analyze.New failed: %v", err)
	}
	return analyzer
}

func newTestFetcher() *article.Fetcher {
	return article.NewFetcher(1 << 20)
}

func TestScan_Text(t *testing.T) {
	database := newTestDB(t)
	store := newTestStore(t)
	analyzer := newTestAnalyzer(t)

	output, err := Scan(context.Background(), database, store, analyzer, newTestFetcher(), ScanInput{
		Text: "昨日手紙を書いた",
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// The compound hits before its parts.
	if output.Count != 3 {
		t.Fatalf("Count = %d, want 3 (手紙, 手, 紙)", output.Count)
	}
	if output.Characters[0].Literal != "手紙" {
		t.Errorf("Characters[0] = %q, want 手紙", output.Characters[0].Literal)
	}
	if output.Source != "text" {
		t.Errorf("Source = %q, want text", output.Source)
	}
	if output.Remembered != 0 {
		t.Errorf("Remembered = %d, want 0 (remember not requested)", output.Remembered)
	}
	if store.Len() != 0 {
		t.Errorf("history length = %d, want 0", store.Len())
	}
}

func TestScan_RememberRecordsHits(t *testing.T) {
	database := newTestDB(t)
	store := newTestStore(t)
	analyzer := newTestAnalyzer(t)

	output, err := Scan(context.Background(), database, store, analyzer, newTestFetcher(), ScanInput{
		Text:     "水と火",
		Remember: true,
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if output.Count != 2 {
		t.Fatalf("Count = %d, want 2", output.Count)
	}
	if output.Remembered != 2 {
		t.Errorf("Remembered = %d, want 2", output.Remembered)
	}
	if !store.Contains("u6c34") || !store.Contains("u706b") {
		t.Error("history should contain both scanned characters")
	}
}

func TestScan_DeduplicatesRepeats(t *testing.T) {
	database := newTestDB(t)
	store := newTestStore(t)
	analyzer := newTestAnalyzer(t)

	output, err := Scan(context.Background(), database, store, analyzer, newTestFetcher(), ScanInput{
		Text: "水と水と水",
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if output.Count != 1 {
		t.Errorf("Count = %d, want 1", output.Count)
	}
}

func TestScan_NoKnownCharacters(t *testing.T) {
	database := newTestDB(t)
	store := newTestStore(t)
	analyzer := newTestAnalyzer(t)

	output, err := Scan(context.Background(), database, store, analyzer, newTestFetcher(), ScanInput{
		Text: "ひらがなとカタカナだけ",
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if output.Count != 0 {
		t.Errorf("Count = %d, want 0", output.Count)
	}
	if output.Characters == nil {
		t.Error("Characters should be an empty slice, not nil")
	}
}

func TestScan_URL(t *testing.T) {
	database := newTestDB(t)
	store := newTestStore(t)
	analyzer := newTestAnalyzer(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(scanPage))
	}))
	defer srv.Close()

	fetcher := newTestFetcher()
	fetcher.Client = srv.Client()

	output, err := Scan(context.Background(), database, store, analyzer, fetcher, ScanInput{
		URL:      srv.URL,
		Remember: true,
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if output.Source != srv.URL {
		t.Errorf("Source = %q, want %q", output.Source, srv.URL)
	}
	if !strings.Contains(output.Title, "湯の町") {
		t.Errorf("Title = %q, want to contain 湯の町", output.Title)
	}

	found := make(map[string]bool)
	for _, c := range output.Characters {
		found[c.Literal] = true
	}
	for _, want := range []string{"湯", "水", "火", "手紙"} {
		if !found[want] {
			t.Errorf("Characters missing %s, got %v", want, output.Characters)
		}
	}
	if output.Remembered != output.Count {
		t.Errorf("Remembered = %d, want %d", output.Remembered, output.Count)
	}
	if store.Len() != output.Count {
		t.Errorf("history length = %d, want %d", store.Len(), output.Count)
	}
}

func TestScan_BothTextAndURL(t *testing.T) {
	database := newTestDB(t)
	store := newTestStore(t)
	analyzer := newTestAnalyzer(t)

	_, err := Scan(context.Background(), database, store, analyzer, newTestFetcher(), ScanInput{
		Text: "水",
		URL:  "https://example.com/article",
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Scan should return ErrInvalidRequest, got: %v", err)
	}
}

func TestScan_NeitherTextNorURL(t *testing.T) {
	database := newTestDB(t)
	store := newTestStore(t)
	analyzer := newTestAnalyzer(t)

	_, err := Scan(context.Background(), database, store, analyzer, newTestFetcher(), ScanInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Scan should return ErrInvalidRequest, got: %v", err)
	}
}

func TestScan_TextTooLong(t *testing.T) {
	database := newTestDB(t)
	store := newTestStore(t)
	analyzer := newTestAnalyzer(t)

	_, err := Scan(context.Background(), database, store, analyzer, newTestFetcher(), ScanInput{
		Text: strings.Repeat("水", MaxScanChars+1),
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Scan should return ErrInvalidRequest, got: %v", err)
	}
}
