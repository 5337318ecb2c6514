package robottests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

const fakeToken = "fake-token"

// fakeBackend is an in-memory restaurant API that behaves the way a conforming backend should,
// unless one of the switches below is set before it serves requests.
type fakeBackend struct {
	// unlistedCategories leaves every category out of GET /categories.
	unlistedCategories bool
	// invalidTokenStatus, if set, is the status returned to requests that use invalidToken.
	invalidTokenStatus int

	categories map[string]bool
	items      map[string]bool
	orders     map[string]map[string]interface{}
	deleted    []string
	nextID     int
	lock       sync.Mutex
	mux        *http.ServeMux
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{
		categories: make(map[string]bool),
		items:      make(map[string]bool),
		orders:     make(map[string]map[string]interface{}),
		mux:        http.NewServeMux(),
	}
	ok := func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, 200, map[string]string{"status": "ok"}) }

	f.mux.HandleFunc("GET /health", ok)
	f.mux.HandleFunc("GET /docs", ok)
	f.mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]interface{}{"openapi": "3.1.0", "paths": map[string]interface{}{}})
	})
	f.mux.HandleFunc("POST /auth/telegram/verify", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if !decode(w, r, &body) {
			return
		}
		writeJSON(w, 200, map[string]string{"access_token": fakeToken})
	})
	f.mux.HandleFunc("GET /me", f.authorized(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]interface{}{"id": 123456789, "role": "admin"})
	}))
	f.mux.HandleFunc("POST /auth/logout", f.authorized(ok))

	f.mux.HandleFunc("GET /categories", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		if f.unlistedCategories {
			writeJSON(w, 200, []map[string]string{})
			return
		}
		f.list(func() map[string]bool { return f.categories })(w, r)
	}))
	f.mux.HandleFunc("POST /categories", f.authorized(f.createCategory))
	f.mux.HandleFunc("GET /categories/{id}", f.authorized(f.read(func() map[string]bool { return f.categories })))
	f.mux.HandleFunc("PUT /categories/{id}", f.authorized(f.read(func() map[string]bool { return f.categories })))
	f.mux.HandleFunc("DELETE /categories/{id}", f.authorized(f.remove("category", func() map[string]bool { return f.categories })))
	f.mux.HandleFunc("PATCH /categories/reorder", f.authorized(ok))

	f.mux.HandleFunc("GET /items", f.authorized(f.list(func() map[string]bool { return f.items })))
	f.mux.HandleFunc("POST /items", f.authorized(f.createItem))
	f.mux.HandleFunc("GET /items/{id}", f.authorized(f.read(func() map[string]bool { return f.items })))
	f.mux.HandleFunc("PUT /items/{id}", f.authorized(f.read(func() map[string]bool { return f.items })))
	f.mux.HandleFunc("PATCH /items/{id}/availability", f.authorized(f.read(func() map[string]bool { return f.items })))
	f.mux.HandleFunc("DELETE /items/{id}", f.authorized(f.remove("item", func() map[string]bool { return f.items })))

	f.mux.HandleFunc("GET /locations", f.authorized(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]interface{}{"locations": []map[string]string{{"id": "loc_1"}}})
	}))
	f.mux.HandleFunc("PUT /locations/{id}", f.authorized(ok))
	f.mux.HandleFunc("GET /locations/{id}/delivery-settings", f.authorized(ok))
	f.mux.HandleFunc("PUT /locations/{id}/delivery-settings", f.authorized(ok))
	f.mux.HandleFunc("POST /media/sign-upload", f.authorized(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"signature": "abc", "timestamp": "1700000000"})
	}))

	f.mux.HandleFunc("GET /orders", f.authorized(f.listOrders))
	f.mux.HandleFunc("POST /orders", f.authorized(f.createOrder))
	f.mux.HandleFunc("GET /orders/stats/summary", f.authorized(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]interface{}{"total_orders": len(f.orders)})
	}))
	f.mux.HandleFunc("GET /orders/{id}", f.authorized(f.readOrder))
	f.mux.HandleFunc("PATCH /orders/{id}/status", f.authorized(f.updateOrderStatus))
	f.mux.HandleFunc("DELETE /orders/{id}", f.authorized(f.removeOrder))
	return f
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.mux.ServeHTTP(w, r)
}

func (f *fakeBackend) deletions() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.deleted...)
}

func (f *fakeBackend) remaining() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.categories) + len(f.items) + len(f.orders)
}

func (f *fakeBackend) newID(prefix string) string {
	f.nextID++
	return prefix + "-" + strconv.Itoa(f.nextID)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func decode(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func (f *fakeBackend) authorized(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "Bearer "+invalidToken && f.invalidTokenStatus != 0 {
			writeError(w, f.invalidTokenStatus, "token check failed")
			return
		}
		if auth != "Bearer "+fakeToken {
			writeError(w, 401, "not authenticated")
			return
		}
		h(w, r)
	}
}

func (f *fakeBackend) list(store func() map[string]bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ret := []map[string]string{}
		for id := range store() {
			ret = append(ret, map[string]string{"id": id})
		}
		writeJSON(w, 200, ret)
	}
}

func (f *fakeBackend) read(store func() map[string]bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if !store()[id] {
			writeError(w, 404, "not found")
			return
		}
		writeJSON(w, 200, map[string]string{"id": id})
	}
}

func (f *fakeBackend) remove(kind string, store func() map[string]bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if !store()[id] {
			writeError(w, 404, "not found")
			return
		}
		delete(store(), id)
		f.deleted = append(f.deleted, kind+" "+id)
		w.WriteHeader(204)
	}
}

func (f *fakeBackend) createCategory(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if !decode(w, r, &body) {
		return
	}
	if _, ok := body["name"]; !ok {
		writeJSON(w, 422, map[string]interface{}{"detail": []map[string]interface{}{
			{"loc": []string{"body", "name"}, "msg": "field required"},
		}})
		return
	}
	id := f.newID("cat")
	f.categories[id] = true
	writeJSON(w, 201, map[string]string{"id": id})
}

func (f *fakeBackend) createItem(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if !decode(w, r, &body) {
		return
	}
	if categoryID, _ := body["category_id"].(string); !f.categories[categoryID] {
		writeError(w, 422, "unknown category")
		return
	}
	id := f.newID("item")
	f.items[id] = true
	writeJSON(w, 201, map[string]string{"id": id})
}

var fakeStatuses = map[string]bool{
	"pending": true, "confirmed": true, "preparing": true, "ready": true, "out_for_delivery": true, "delivered": true,
}

func (f *fakeBackend) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if status := q.Get("status"); status != "" && !fakeStatuses[status] {
		writeError(w, 422, "invalid status")
		return
	}
	limit := len(f.orders)
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l < limit {
		limit = l
	}
	ret := []map[string]interface{}{}
	for _, o := range f.orders {
		if len(ret) == limit {
			break
		}
		ret = append(ret, o)
	}
	writeJSON(w, 200, map[string]interface{}{"orders": ret, "total": len(f.orders)})
}

func (f *fakeBackend) createOrder(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if !decode(w, r, &body) {
		return
	}
	if body["location_id"] != "loc_1" {
		writeError(w, 422, "unknown location")
		return
	}
	lines, _ := body["items"].([]interface{})
	if len(lines) == 0 {
		writeError(w, 422, "order has no items")
		return
	}
	for _, line := range lines {
		itemID, _ := line.(map[string]interface{})["item_id"].(string)
		if !f.items[itemID] {
			writeError(w, 422, fmt.Sprintf("unknown item %q", itemID))
			return
		}
	}
	id := f.newID("order")
	body["id"] = id
	body["status"] = "pending"
	f.orders[id] = body
	writeJSON(w, 201, body)
}

func (f *fakeBackend) readOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := f.orders[r.PathValue("id")]
	if !ok {
		writeError(w, 404, "order not found")
		return
	}
	writeJSON(w, 200, o)
}

func (f *fakeBackend) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	o, ok := f.orders[r.PathValue("id")]
	if !ok {
		writeError(w, 404, "order not found")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &body) {
		return
	}
	if !fakeStatuses[body.Status] {
		writeError(w, 422, "invalid status")
		return
	}
	o["status"] = body.Status
	writeJSON(w, 200, o)
}

func (f *fakeBackend) removeOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := f.orders[id]; !ok {
		writeError(w, 404, "order not found")
		return
	}
	delete(f.orders, id)
	f.deleted = append(f.deleted, "order "+id)
	w.WriteHeader(204)
}

// withoutPrefix serves only requests under the given prefix, stripping it first.
func withoutPrefix(prefix string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, prefix+"/") {
			writeError(w, 404, "not found")
			return
		}
		http.StripPrefix(prefix, h).ServeHTTP(w, r)
	})
}
