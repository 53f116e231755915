package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/c2fo/vfs/v7/vfssimple"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/mocks"
	"github.com/c2fo/docstore/options/newupload"
	"github.com/c2fo/docstore/types"
)

const bucketPath = "/projects/p/buckets/b"

type received struct {
	path         string
	fileID       string
	filename     string
	contentType  string
	contentRange string
	uploadID     string
	data         []byte
}

type UploadTestSuite struct {
	suite.Suite
	server *httptest.Server
	mu     sync.Mutex
	got    []received
	// failAt makes the n-th received request (1-based) answer 500.
	failAt int
	u      *Uploader
}

func (s *UploadTestSuite) SetupTest() {
	s.got = nil
	s.failAt = 0
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))

	opts := dispatch.NewOptions()
	opts.BaseURL = s.server.URL
	d := dispatch.New(opts, s.server.Client(), nil, nil)
	s.u = New(d, WithChunkSize(1024))
}

func (s *UploadTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *UploadTestSuite) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := received{
		path:         r.URL.Path,
		contentRange: r.Header.Get("Content-Range"),
		uploadID:     r.Header.Get("X-Upload-ID"),
	}

	if strings.HasSuffix(r.URL.Path, "/base64") {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		rec.fileID = body["fileId"]
		rec.filename = body["name"]
		rec.contentType = body["mimeType"]
		rec.data, _ = base64.StdEncoding.DecodeString(body["data"])
	} else {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		rec.fileID = r.FormValue("fileId")
		f, fh, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		rec.filename = fh.Filename
		rec.contentType = fh.Header.Get("Content-Type")
		rec.data, _ = io.ReadAll(f)
	}
	s.got = append(s.got, rec)

	if len(s.got) == s.failAt {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	chunks := 0
	for _, g := range s.got {
		if g.fileID == rec.fileID {
			chunks++
		}
	}
	_, _ = fmt.Fprintf(w, `{"$id":"srv-%s","name":%q,"mimeType":%q,"chunksUploaded":%d}`,
		rec.fileID, rec.filename, rec.contentType, chunks)
}

func (s *UploadTestSuite) requests() []received {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]received(nil), s.got...)
}

func payloadOf(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + i%26)
	}
	return b
}

func (s *UploadTestSuite) TestDirectUpload() {
	var reports []types.UploadProgress
	file, err := s.u.Upload(context.Background(), bucketPath, FromBytes("notes.txt", []byte("hello docstore")),
		newupload.WithFileID("notes"),
		newupload.WithProgress(func(p types.UploadProgress) { reports = append(reports, p) }),
	)
	s.Require().NoError(err)
	s.Equal("srv-notes", file.ID)

	got := s.requests()
	s.Require().Len(got, 1)
	s.Equal(bucketPath+"/files", got[0].path)
	s.Equal("notes", got[0].fileID)
	s.Equal("notes.txt", got[0].filename)
	s.Equal("text/plain; charset=utf-8", got[0].contentType)
	s.Equal("hello docstore", string(got[0].data))
	s.Empty(got[0].contentRange)
	s.Empty(got[0].uploadID)

	s.Require().Len(reports, 1)
	s.Equal(types.UploadProgress{
		FileID: "notes", UploadID: "srv-notes", BytesUploaded: 14, BytesTotal: 14,
		ChunksUploaded: 1, ChunksTotal: 1, Percent: 100,
	}, reports[0])
}

func (s *UploadTestSuite) TestExactlyChunkSizeIsDirect() {
	_, err := s.u.Upload(context.Background(), bucketPath, FromBytes("a.bin", payloadOf(1024)))
	s.Require().NoError(err)

	got := s.requests()
	s.Require().Len(got, 1)
	s.Empty(got[0].contentRange)
	s.NoError(uuid.Validate(got[0].fileID), "generated id is a uuid")
}

func (s *UploadTestSuite) TestContentType() {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

	_, err := s.u.Upload(context.Background(), bucketPath, FromBytes("img", png))
	s.Require().NoError(err)
	_, err = s.u.Upload(context.Background(), bucketPath, FromBytes("img", png), newupload.WithContentType("application/x-custom"))
	s.Require().NoError(err)

	got := s.requests()
	s.Require().Len(got, 2)
	s.Equal("image/png", got[0].contentType, "detected")
	s.Equal("application/x-custom", got[1].contentType, "explicit")
}

func (s *UploadTestSuite) TestBase64Upload() {
	data := []byte(`{"hello":"world"}`)
	file, err := s.u.Upload(context.Background(), bucketPath, FromBytes("doc.json", data),
		newupload.WithFileID("doc"), newupload.WithBase64())
	s.Require().NoError(err)
	s.Equal("srv-doc", file.ID)

	got := s.requests()
	s.Require().Len(got, 1)
	s.Equal(bucketPath+"/files/base64", got[0].path)
	s.Equal("doc", got[0].fileID)
	s.Equal("doc.json", got[0].filename)
	s.Equal("application/json", got[0].contentType)
	s.Equal(data, got[0].data)
}

func (s *UploadTestSuite) TestChunkedUpload() {
	data := payloadOf(2500)
	var reports []types.UploadProgress

	file, err := s.u.Upload(context.Background(), bucketPath, FromReader("big.txt", bytes.NewReader(data), int64(len(data))),
		newupload.WithFileID("big"),
		newupload.WithBase64(),
		newupload.WithProgress(func(p types.UploadProgress) { reports = append(reports, p) }),
	)
	s.Require().NoError(err)
	s.Equal(3, file.ChunksUploaded, "last chunk response is returned")

	got := s.requests()
	s.Require().Len(got, 3)
	s.Equal([]string{"bytes 0-1023/2500", "bytes 1024-2047/2500", "bytes 2048-2499/2500"},
		[]string{got[0].contentRange, got[1].contentRange, got[2].contentRange})
	s.Equal([]string{"", "srv-big", "srv-big"}, []string{got[0].uploadID, got[1].uploadID, got[2].uploadID})

	var joined []byte
	for _, g := range got {
		s.Equal(bucketPath+"/files", g.path, "chunks are always multipart")
		s.Equal("big", g.fileID)
		joined = append(joined, g.data...)
	}
	s.Equal(data, joined, "chunks add up to the source")

	s.Require().Len(reports, 3)
	s.Equal(int64(1024), reports[0].BytesUploaded)
	s.Equal(int64(2500), reports[2].BytesUploaded)
	s.Equal(3, reports[2].ChunksTotal)
	s.InDelta(100.0, reports[2].Percent, 0.001)
	s.InDelta(40.96, reports[0].Percent, 0.001)
}

func (s *UploadTestSuite) TestChunkFailureAndResume() {
	data := payloadOf(3000)
	src := FromBytes("big.bin", data)
	s.failAt = 2

	_, err := s.u.Upload(context.Background(), bucketPath, src)
	s.Require().Error(err)
	s.ErrorIs(err, dispatch.ErrServer)

	var chunkErr *ChunkError
	s.Require().ErrorAs(err, &chunkErr)
	s.Equal(1, chunkErr.Chunk)
	s.Equal(int64(1024), chunkErr.Offset)
	s.Equal(chunkErr.Offset, chunkErr.BytesUploaded, "accepted bytes end where the failed chunk starts")
	s.Equal("srv-"+chunkErr.FileID, chunkErr.UploadID)
	s.Require().NotNil(chunkErr.Last)
	s.Equal(1, chunkErr.Last.ChunksUploaded)

	file, err := s.u.Upload(context.Background(), bucketPath, src, chunkErr.ResumeOptions()...)
	s.Require().NoError(err)
	s.Equal("srv-"+chunkErr.FileID, file.ID)

	got := s.requests()
	s.Require().Len(got, 4, "one accepted chunk, one failed, two resumed")
	s.Equal("bytes 1024-2047/3000", got[2].contentRange)
	s.Equal("bytes 2048-2999/3000", got[3].contentRange)
	s.Equal(chunkErr.UploadID, got[2].uploadID)
	s.Equal(chunkErr.FileID, got[3].fileID)

	joined := append(append([]byte{}, got[0].data...), got[2].data...)
	joined = append(joined, got[3].data...)
	s.Equal(data, joined)
}

func (s *UploadTestSuite) TestFirstChunkFailure() {
	s.failAt = 1

	_, err := s.u.Upload(context.Background(), bucketPath, FromBytes("big.bin", payloadOf(2048)))
	var chunkErr *ChunkError
	s.Require().ErrorAs(err, &chunkErr)
	s.Equal(0, chunkErr.Chunk)
	s.Empty(chunkErr.UploadID)
	s.Nil(chunkErr.Last)
}

func (s *UploadTestSuite) TestShortRead() {
	s.Run("direct", func() {
		_, err := s.u.Upload(context.Background(), bucketPath, FromReader("x", strings.NewReader("abc"), 10))
		s.ErrorIs(err, ErrShortRead)
	})

	s.Run("chunked", func() {
		_, err := s.u.Upload(context.Background(), bucketPath, FromReader("x", strings.NewReader("abc"), 4096))
		s.ErrorIs(err, ErrShortRead)
		var chunkErr *ChunkError
		s.ErrorAs(err, &chunkErr)
	})
	s.Empty(s.requests())
}

func (s *UploadTestSuite) TestInvalidFileID() {
	_, err := s.u.Upload(context.Background(), bucketPath, FromBytes("x", []byte("x")), newupload.WithFileID("a/b"))
	s.Error(err)
	s.Empty(s.requests())
}

func (s *UploadTestSuite) TestEmptySource() {
	var reports []types.UploadProgress
	_, err := s.u.Upload(context.Background(), bucketPath, FromBytes("empty", nil),
		newupload.WithProgress(func(p types.UploadProgress) { reports = append(reports, p) }))
	s.Require().NoError(err)
	s.Require().Len(reports, 1)
	s.Equal(100.0, reports[0].Percent)
}

func (s *UploadTestSuite) TestFromURI() {
	uri := "mem://upload/" + uuid.NewString() + "/report.csv"
	f, err := vfssimple.NewFile(uri)
	s.Require().NoError(err)
	_, err = f.Write([]byte("a,b\n1,2\n"))
	s.Require().NoError(err)
	s.Require().NoError(f.Close())

	src, err := FromURI(uri)
	s.Require().NoError(err)
	s.Equal("report.csv", src.Name())
	size, err := src.Size()
	s.Require().NoError(err)
	s.Equal(int64(8), size)

	_, err = s.u.Upload(context.Background(), bucketPath, src)
	s.Require().NoError(err)
	got := s.requests()
	s.Require().Len(got, 1)
	s.Equal("a,b\n1,2\n", string(got[0].data))
	s.Equal("text/csv", got[0].contentType)
}

func (s *UploadTestSuite) TestSourceFailures() {
	s.Run("size", func() {
		src := mocks.NewSource(s.T())
		src.EXPECT().Size().Return(0, errors.New("stat failed"))
		_, err := s.u.Upload(context.Background(), bucketPath, src)
		s.ErrorContains(err, "stat failed")
	})

	s.Run("negative size", func() {
		src := mocks.NewSource(s.T())
		src.EXPECT().Size().Return(-1, nil)
		_, err := s.u.Upload(context.Background(), bucketPath, src)
		s.Error(err)
	})

	s.Run("open", func() {
		src := mocks.NewSource(s.T())
		src.EXPECT().Size().Return(10, nil)
		src.EXPECT().Open().Return(nil, errors.New("permission denied"))
		_, err := s.u.Upload(context.Background(), bucketPath, src)
		s.ErrorContains(err, "permission denied")
	})
	s.Empty(s.requests())
}

func (s *UploadTestSuite) TestResumeReopensSource() {
	data := strings.Repeat("0123456789", 250)
	src := mocks.NewStringSource(data, "digits.txt")
	s.failAt = 2

	_, err := s.u.Upload(context.Background(), bucketPath, src, newupload.WithFileID("digits"))
	var chunkErr *ChunkError
	s.Require().ErrorAs(err, &chunkErr)

	_, err = s.u.Upload(context.Background(), bucketPath, src, chunkErr.ResumeOptions()...)
	s.Require().NoError(err)

	var uploaded []byte
	for i, r := range s.requests() {
		if i == 1 {
			continue
		}
		uploaded = append(uploaded, r.data...)
	}
	s.Equal(data, string(uploaded))
	src.AssertNumberOfCalls(s.T(), "Open", 2)
}

func TestUpload(t *testing.T) {
	suite.Run(t, new(UploadTestSuite))
}

// onceReader hides the Seek method of its reader.
type onceReader struct {
	io.Reader
}

type reopenable struct {
	data []byte
}

func (r *reopenable) Name() string         { return "r" }
func (r *reopenable) Size() (int64, error) { return int64(len(r.data)), nil }
func (r *reopenable) Open() (io.ReadCloser, error) {
	return io.NopCloser(onceReader{bytes.NewReader(r.data)}), nil
}

func TestOpenPayloadDiscardsWithoutSeeker(t *testing.T) {
	src := &reopenable{data: []byte("%PDF-1.7 rest of the document")}

	p, err := openPayload(src, 9, "")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = p.Close() }()

	if p.contentType != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", p.contentType)
	}
	rest, err := io.ReadAll(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(rest) != "rest of the document" {
		t.Errorf("unexpected remainder %q", rest)
	}

	_, err = openPayload(src, 100, "text/plain")
	if !errors.Is(err, ErrShortRead) {
		t.Errorf("expected ErrShortRead, got %v", err)
	}
}

func TestFromReaderSingleUse(t *testing.T) {
	src := FromReader("r", onceReader{strings.NewReader("abc")}, 3)

	rc, err := src.Open()
	if err != nil {
		t.Fatal(err)
	}
	_ = rc.Close()

	if _, err := src.Open(); !errors.Is(err, ErrSourceConsumed) {
		t.Errorf("expected ErrSourceConsumed, got %v", err)
	}
}
