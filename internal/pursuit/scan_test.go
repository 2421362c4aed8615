package pursuit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScanPageForChase_LiveChaseHeadline(t *testing.T) {
	// 最小の検出ケース: ライブ追跡見出し + ページ内コアシグナル
	srv := serveHTML(t, `<html><body>
		<h1>Live: Police pursuit underway on I-5 freeway</h1>
		<p>The CHP pursuit started near downtown and continues northbound this evening.</p>
	</body></html>`)

	finding := ScanPageForChase(srv.URL, DefaultFetchConfig())
	require.NotNil(t, finding)
	assert.GreaterOrEqual(t, finding.Score, MinScoreToLog)
	assert.NotEmpty(t, finding.Text)
	assert.Equal(t, srv.URL, finding.URL)
	assert.NotEmpty(t, finding.HTML)
	assert.LessOrEqual(t, finding.Confidence, 1.0)
	assert.Positive(t, finding.Confidence)
}

func TestScanPageForChase_CoreGateRejectsGenericTrafficPage(t *testing.T) {
	// news chopper + freeway だけで閾値は超えるが、コアシグナルが
	// ページ上に1つも無いので却下されなければならない
	srv := serveHTML(t, `<html><body>
		<p>A news chopper circled the 405 Freeway while a second news chopper filmed Highway 101 traffic.</p>
	</body></html>`)

	blockScore := ScoreText("A news chopper circled the 405 Freeway while a second news chopper filmed Highway 101 traffic.")
	require.GreaterOrEqual(t, blockScore.Total, MinScoreToLog, "precondition: block alone must clear the threshold")

	assert.Nil(t, ScanPageForChase(srv.URL, DefaultFetchConfig()))
}

func TestScanPageForChase_BelowThresholdRejected(t *testing.T) {
	srv := serveHTML(t, `<html><body><p>A suspect was arrested downtown yesterday without incident, officers said.</p></body></html>`)
	assert.Nil(t, ScanPageForChase(srv.URL, DefaultFetchConfig()))
}

func TestScanPageForChase_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	assert.Nil(t, ScanPageForChase(srv.URL, DefaultFetchConfig()))
}

func TestScanPageForChase_NonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"headline": "Live police pursuit on the freeway"}`))
	}))
	t.Cleanup(srv.Close)
	assert.Nil(t, ScanPageForChase(srv.URL, DefaultFetchConfig()))
}

func TestScanPageForChase_SoftBlockMarker(t *testing.T) {
	srv := serveHTML(t, `<html><body>
		<h1>Access to this site has been denied</h1>
		<p>Live police pursuit on the 110 Freeway right now.</p>
	</body></html>`)
	assert.Nil(t, ScanPageForChase(srv.URL, DefaultFetchConfig()))
}

func TestScanPageForChase_TransportError(t *testing.T) {
	// 閉じたサーバへの接続は失敗し、nilでスキップされる
	srv := serveHTML(t, "<h1>ok</h1>")
	url := srv.URL
	srv.Close()
	assert.Nil(t, ScanPageForChase(url, DefaultFetchConfig()))
}

func TestEvaluatePage_DeterministicForSameHTML(t *testing.T) {
	html := `<h1>Live: Police pursuit underway on I-5 freeway</h1><p>CHP pursuit continues north.</p>`
	first := EvaluatePage("https://example.com/", html)
	second := EvaluatePage("https://example.com/", html)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Hits, second.Hits)
}

// -----------------------------------------------------------------------------
// フィードプローブ
// -----------------------------------------------------------------------------

const chaseFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
  <title>Local News</title>
  <item>
    <title>Council votes on budget</title>
    <link>https://example.com/budget</link>
    <description>The city council approved next year's budget.</description>
  </item>
  <item>
    <title>Live: high-speed chase on the 91 Freeway</title>
    <link>https://example.com/chase</link>
    <description>A police pursuit is underway with the suspect heading east.</description>
  </item>
</channel></rss>`

func TestScanFeedForChase_PicksChaseItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(chaseFeedXML))
	}))
	t.Cleanup(srv.Close)

	ff := ScanFeedForChase(srv.URL, DefaultFetchConfig())
	require.NotNil(t, ff)
	assert.Equal(t, "Live: high-speed chase on the 91 Freeway", ff.ItemTitle)
	assert.Equal(t, "https://example.com/chase", ff.ItemLink)
	assert.Equal(t, "https://example.com/chase", ff.URL)
	assert.GreaterOrEqual(t, ff.Score, MinScoreToLog)
	assert.NotEmpty(t, ff.Text)
}

func TestScanFeedForChase_CoreGateAppliesToFeedText(t *testing.T) {
	feed := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Traffic</title>
  <item><title>News chopper over the 405 Freeway</title>
    <link>https://example.com/t</link>
    <description>A news chopper filmed slow traffic on Highway 101 and the freeway.</description></item>
</channel></rss>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feed))
	}))
	t.Cleanup(srv.Close)

	assert.Nil(t, ScanFeedForChase(srv.URL, DefaultFetchConfig()))
}

func TestScanFeedForChase_BadFeedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not xml"))
	}))
	t.Cleanup(srv.Close)
	assert.Nil(t, ScanFeedForChase(srv.URL, DefaultFetchConfig()))
}
