package response_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/HMasataka/tinyhttpd/internal/fsys"
	mock_fsys "github.com/HMasataka/tinyhttpd/internal/fsys/mock"
	"github.com/HMasataka/tinyhttpd/internal/resolver"
	"github.com/HMasataka/tinyhttpd/internal/response"
	"github.com/HMasataka/tinyhttpd/internal/wire"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const header = "HTTP/1.1 200 OK\r\nServer: MyServer v0.1\r\n\r\n"

func newBuilder(fs fsys.Filesystem) *response.Builder {
	return response.NewBuilder(fs, wire.Default(), response.DefaultOptions())
}

func TestBuilder_File(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blob := []byte{0x00, 0xff, 0x89, 'P', 'N', 'G', '\r', '\n', 0x1a}

	fs := mock_fsys.NewMockFilesystem(ctrl)
	fs.EXPECT().ReadFile("img.png").Return(blob, nil)

	resp := newBuilder(fs).Build(context.Background(), resolver.File("img.png"))

	assert.Equal(t, response.OutcomeOk, resp.Outcome)
	out := resp.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte(header)))
	assert.Equal(t, blob, bytes.TrimPrefix(out, []byte(header)))
}

func TestBuilder_FileReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fs := mock_fsys.NewMockFilesystem(ctrl)
	fs.EXPECT().ReadFile("gone").Return(nil, errors.New("no such file"))

	resp := newBuilder(fs).Build(context.Background(), resolver.File("gone"))

	assert.Equal(t, response.OutcomeNotFound, resp.Outcome)
	assert.Equal(t, header+response.ErrorBody, string(resp.Bytes()))
}

func TestBuilder_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resp := newBuilder(mock_fsys.NewMockFilesystem(ctrl)).Build(context.Background(), resolver.NotFound())

	assert.Equal(t, response.OutcomeNotFound, resp.Outcome)
	assert.Equal(t, "HTTP/1.1 200 OK", resp.StatusLine)
	assert.Equal(t, header+"<h1>Sorry, but there was some kind of error(</h1>", string(resp.Bytes()))
}

func TestBuilder_Malformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resp := newBuilder(mock_fsys.NewMockFilesystem(ctrl)).Malformed()

	assert.Equal(t, response.OutcomeMalformed, resp.Outcome)
	assert.Equal(t, header+response.ErrorBody, string(resp.Bytes()))
}

func TestBuilder_Directory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b := newBuilder(mock_fsys.NewMockFilesystem(ctrl))

	t.Run("ルートの一覧", func(t *testing.T) {
		resp := b.Build(context.Background(), resolver.Directory("", []string{"a.txt", "sub"}))
		body := string(resp.Body)

		assert.Equal(t, response.OutcomeOk, resp.Outcome)
		assert.Contains(t, body, `<li><a href="a.txt">a.txt</a></li>`)
		assert.Contains(t, body, `<li><a href="sub">sub</a></li>`)
		assert.Less(t, strings.Index(body, "a.txt"), strings.Index(body, `"sub"`))
		assert.True(t, strings.HasPrefix(body, `<html><head><meta charset="UTF-8"><title>/</title></head><body><ul>`))
		assert.Contains(t, body, "<style>")
		assert.Contains(t, body, "linear-gradient(to left, #000000 , #434343)")
		assert.Contains(t, body, "li:hover{")

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
		require.NoError(t, err)
		assert.Equal(t, "/", doc.Find("title").Text())

		var hrefs, texts []string
		doc.Find("ul li a").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			hrefs = append(hrefs, href)
			texts = append(texts, s.Text())
		})
		assert.Equal(t, []string{"a.txt", "sub"}, hrefs)
		assert.Equal(t, []string{"a.txt", "sub"}, texts)
	})

	t.Run("サブディレクトリの一覧", func(t *testing.T) {
		resp := b.Build(context.Background(), resolver.Directory("docs/api", []string{"x.md", "y.md"}))

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
		require.NoError(t, err)
		assert.Equal(t, "/docs/api", doc.Find("title").Text())

		var hrefs []string
		doc.Find("li a").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			hrefs = append(hrefs, href)
		})
		assert.Equal(t, []string{"docs/api/x.md", "docs/api/y.md"}, hrefs)
	})

	t.Run("空のディレクトリ", func(t *testing.T) {
		resp := b.Build(context.Background(), resolver.Directory("empty", nil))

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Find("li").Length())
	})
}

func TestBuilder_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b := newBuilder(mock_fsys.NewMockFilesystem(ctrl))
	b.Register(resolver.KindNotFound, func(_ context.Context, _ resolver.Target) (response.Outcome, []byte) {
		return response.OutcomeNotFound, []byte("custom")
	})

	resp := b.Build(context.Background(), resolver.NotFound())
	assert.Equal(t, "custom", string(resp.Body))
}

func TestBuilder_StatusTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	opts := response.DefaultOptions()
	opts.Statuses = response.StatusTable{
		response.OutcomeOk:        "200 OK",
		response.OutcomeNotFound:  "404 Not Found",
		response.OutcomeMalformed: "400 Bad Request",
	}
	b := response.NewBuilder(mock_fsys.NewMockFilesystem(ctrl), wire.Default(), opts)

	assert.Equal(t, "HTTP/1.1 404 Not Found", b.Build(context.Background(), resolver.NotFound()).StatusLine)
	assert.Equal(t, "HTTP/1.1 400 Bad Request", b.Malformed().StatusLine)
}

func TestDefaultStatusTable(t *testing.T) {
	table := response.DefaultStatusTable()

	for _, o := range []response.Outcome{response.OutcomeOk, response.OutcomeNotFound, response.OutcomeMalformed} {
		t.Run(o.String(), func(t *testing.T) {
			assert.Equal(t, "200 OK", table.Status(o))
		})
	}

	assert.Equal(t, "200 OK", response.StatusTable{}.Status(response.OutcomeNotFound))
}

func TestResponse_Bytes(t *testing.T) {
	r := &response.Response{
		StatusLine: "HTTP/1.1 200 OK",
		Headers: []response.Header{
			{Name: "Server", Value: "test"},
			{Name: "X-B", Value: "2"},
			{Name: "X-A", Value: "1"},
		},
		Body: []byte("body"),
	}

	assert.Equal(t, "HTTP/1.1 200 OK\r\nServer: test\r\nX-B: 2\r\nX-A: 1\r\n\r\nbody", string(r.Bytes()))
}
