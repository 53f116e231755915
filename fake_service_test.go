package docstore

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/c2fo/docstore/utils"
)

// fakeService is a minimal in-memory docstore API.
type fakeService struct {
	mu        sync.Mutex
	down      bool
	docs      map[string]map[string]any
	files     map[string]map[string]any
	content   map[string][]byte
	requests  []*http.Request
	queries   []string
	lastBody  map[string]any
	uploadIDs []string
}

func newFakeService() *fakeService {
	return &fakeService{
		docs:    map[string]map[string]any{},
		files:   map[string]map[string]any{},
		content: map[string][]byte{},
	}
}

func (f *fakeService) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *fakeService) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeService) lastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusNotFound, map[string]any{"message": what + " not found", "code": 404, "type": what + "_not_found"})
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r)
	if f.down {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	parts, err := utils.SplitPath(strings.TrimPrefix(r.URL.EscapedPath(), "/v1"))
	if err != nil || len(parts) < 2 || parts[0] != "projects" {
		notFound(w, "route")
		return
	}
	if len(parts) == 2 {
		writeJSON(w, http.StatusOK, map[string]any{"$id": parts[1], "name": "Project " + parts[1]})
		return
	}

	switch parts[2] {
	case "collections":
		f.serveCollections(w, r, parts)
	case "buckets":
		f.serveBuckets(w, r, parts)
	default:
		notFound(w, "route")
	}
}

func (f *fakeService) serveCollections(w http.ResponseWriter, r *http.Request, parts []string) {
	switch len(parts) {
	case 3:
		writeJSON(w, http.StatusOK, map[string]any{
			"total":       1,
			"collections": []map[string]any{{"$id": "posts", "$projectId": parts[1], "name": "Posts"}},
		})
	case 4:
		writeJSON(w, http.StatusOK, map[string]any{"$id": parts[3], "$projectId": parts[1], "name": parts[3], "enabled": true})
	case 5:
		f.serveDocuments(w, r, parts)
	case 6:
		f.serveDocument(w, r, parts)
	default:
		notFound(w, "route")
	}
}

func (f *fakeService) decodeBody(r *http.Request) map[string]any {
	body := map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.lastBody = body
	return body
}

func (f *fakeService) serveDocuments(w http.ResponseWriter, r *http.Request, parts []string) {
	prefix := utils.JoinPath(parts[:5]...)

	switch r.Method {
	case http.MethodGet:
		f.queries = r.URL.Query()["queries[]"]
		docs := []map[string]any{}
		for p, d := range f.docs {
			if strings.HasPrefix(p, prefix+"/") {
				docs = append(docs, d)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"total": len(docs), "documents": docs})
	case http.MethodPost:
		body := f.decodeBody(r)
		id, _ := body["documentId"].(string)
		p := prefix + utils.JoinPath(id)
		if _, ok := f.docs[p]; ok {
			writeJSON(w, http.StatusConflict, map[string]any{"message": "Document already exists", "type": "document_already_exists"})
			return
		}
		f.docs[p] = document(parts, id, body)
		writeJSON(w, http.StatusCreated, f.docs[p])
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeService) serveDocument(w http.ResponseWriter, r *http.Request, parts []string) {
	p := utils.JoinPath(parts...)
	existing, ok := f.docs[p]

	switch r.Method {
	case http.MethodGet:
		if !ok {
			notFound(w, "document")
			return
		}
		writeJSON(w, http.StatusOK, existing)
	case http.MethodPut:
		f.docs[p] = document(parts, parts[5], f.decodeBody(r))
		writeJSON(w, http.StatusOK, f.docs[p])
	case http.MethodPatch:
		if !ok {
			notFound(w, "document")
			return
		}
		body := f.decodeBody(r)
		data, _ := body["data"].(map[string]any)
		for k, v := range data {
			existing[k] = v
		}
		writeJSON(w, http.StatusOK, existing)
	case http.MethodDelete:
		if !ok {
			notFound(w, "document")
			return
		}
		delete(f.docs, p)
		w.WriteHeader(http.StatusNoContent)
	}
}

func document(parts []string, id string, body map[string]any) map[string]any {
	doc := map[string]any{
		"$id":           id,
		"$collectionId": parts[3],
		"$projectId":    parts[1],
		"$createdAt":    "2024-03-01T10:00:00Z",
		"$updatedAt":    "2024-03-01T10:00:00Z",
	}
	if perms, ok := body["permissions"]; ok {
		doc["$permissions"] = perms
	}
	data, _ := body["data"].(map[string]any)
	for k, v := range data {
		doc[k] = v
	}
	return doc
}

func (f *fakeService) serveBuckets(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) < 5 || parts[4] != "files" {
		notFound(w, "route")
		return
	}
	prefix := utils.JoinPath(parts[:5]...)

	switch {
	case len(parts) == 5 && r.Method == http.MethodGet:
		files := []map[string]any{}
		for p, file := range f.files {
			if strings.HasPrefix(p, prefix+"/") {
				files = append(files, file)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"total": len(files), "files": files})
	case len(parts) == 5 && r.Method == http.MethodPost:
		f.receiveChunk(w, r, prefix, parts[3])
	case len(parts) == 6 && r.Method == http.MethodGet:
		file, ok := f.files[prefix+utils.JoinPath(parts[5])]
		if !ok {
			notFound(w, "file")
			return
		}
		writeJSON(w, http.StatusOK, file)
	case len(parts) == 6 && r.Method == http.MethodDelete:
		delete(f.files, prefix+utils.JoinPath(parts[5]))
		delete(f.content, prefix+utils.JoinPath(parts[5]))
		w.WriteHeader(http.StatusNoContent)
	case len(parts) == 7 && parts[6] == "download":
		content, ok := f.content[prefix+utils.JoinPath(parts[5])]
		if !ok {
			notFound(w, "file")
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(content)
	default:
		notFound(w, "route")
	}
}

func (f *fakeService) receiveChunk(w http.ResponseWriter, r *http.Request, prefix, bucketID string) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
		return
	}
	id := r.FormValue("fileId")
	part, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
		return
	}
	data, _ := io.ReadAll(part)
	f.uploadIDs = append(f.uploadIDs, r.Header.Get("X-Upload-ID"))

	p := prefix + utils.JoinPath(id)
	if r.Header.Get("X-Upload-ID") == "" {
		f.content[p] = nil
	}
	f.content[p] = append(f.content[p], data...)

	chunks := 1
	if file, ok := f.files[p]; ok && r.Header.Get("X-Upload-ID") != "" {
		chunks = int(file["chunksUploaded"].(float64)) + 1
	}
	f.files[p] = map[string]any{
		"$id":            id,
		"bucketId":       bucketID,
		"name":           header.Filename,
		"mimeType":       header.Header.Get("Content-Type"),
		"sizeOriginal":   float64(len(f.content[p])),
		"chunksUploaded": float64(chunks),
		"chunksTotal":    float64(chunks),
	}
	writeJSON(w, http.StatusCreated, f.files[p])
}
