// Package testutils provides an in-memory Omada controller for tests.
package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mheath/go-omada/omada"
)

const (
	// Credentials the fake controller accepts.
	Username = "admin"
	Password = "correct-pw"

	// Token the fake controller issues at login.
	Token = "fake-csrf-token"

	controllerID = "abcd1234"
	sessionName  = "TPOMADA_SESSIONID"
	sessionValue = "fake-session"
)

// FakeController simulates an Omada controller over TLS: redirect-based base
// URL discovery, login with a Csrf-Token, paged client listings, devices,
// alerts, events and the cmd endpoints. Response shapes follow the real
// controller's {errorCode, msg, result} envelope.
type FakeController struct {
	Server *httptest.Server

	mu       sync.Mutex
	loggedIn bool
	clients  []omada.NetworkClient
	devices  []omada.Device
	alerts   []omada.Alert
	events   []omada.Event
	blocked  map[string]bool

	requests atomic.Int64

	// LoginDelay makes the login endpoint stall before answering, to give
	// tests a window for cancelling a pending login.
	LoginDelay time.Duration
	// MalformedClients makes the client listing return a non-JSON body.
	MalformedClients bool
	// MissingEnvelope makes the client listing return JSON without the
	// errorCode envelope.
	MissingEnvelope bool
}

// NewFakeController starts the fake controller. Callers must Close it.
func NewFakeController() *FakeController {
	f := &FakeController{blocked: map[string]bool{}}

	mux := http.NewServeMux()
	api := "/" + controllerID + "/api/v2"

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/"+controllerID+"/login", http.StatusFound)
	})
	mux.HandleFunc("POST "+api+"/login", f.handleLogin)
	mux.HandleFunc("POST "+api+"/logout", f.authenticated(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.loggedIn = false
		f.mu.Unlock()
		writeEnvelope(w, nil)
	}))
	mux.HandleFunc("GET "+api+"/loginStatus", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			// The real controller redirects to the HTML login page here
			// instead of answering with JSON.
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html><body>login</body></html>")
			return
		}
		writeEnvelope(w, map[string]bool{"login": true})
	})
	mux.HandleFunc("GET "+api+"/users/current", f.authenticated(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, omada.User{ID: "1", Name: Username, Type: 0})
	}))

	site := api + "/sites/{site}"
	mux.HandleFunc("GET "+site+"/clients", f.authenticated(f.handleListClients))
	mux.HandleFunc("GET "+site+"/clients/{mac}", f.authenticated(f.handleGetClient))
	mux.HandleFunc("PATCH "+site+"/clients/{mac}", f.authenticated(f.handlePatchClient))
	mux.HandleFunc("POST "+site+"/cmd/clients/{mac}/block", f.authenticated(f.handleBlock(true)))
	mux.HandleFunc("POST "+site+"/cmd/clients/{mac}/unblock", f.authenticated(f.handleBlock(false)))
	mux.HandleFunc("GET "+site+"/devices", f.authenticated(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeEnvelope(w, f.devices)
	}))
	mux.HandleFunc("POST "+site+"/cmd/devices/{mac}/reboot", f.authenticated(f.handleDeviceCmd))
	mux.HandleFunc("POST "+site+"/cmd/devices/{mac}/onlineUpgrade", f.authenticated(f.handleDeviceCmd))
	mux.HandleFunc("GET "+site+"/switches/{mac}", f.authenticated(f.handleGetSwitch))
	mux.HandleFunc("GET "+site+"/switches/{mac}/ports", f.authenticated(f.handleSwitchPorts))
	mux.HandleFunc("GET "+site+"/eaps/{mac}", f.authenticated(f.handleGetAccessPoint))
	mux.HandleFunc("GET "+site+"/alerts", f.authenticated(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		alerts := make([]omada.Alert, 0, len(f.alerts))
		level := r.URL.Query().Get("filters.level")
		module := r.URL.Query().Get("filters.module")
		archived := r.URL.Query().Get("filters.archived") == "true"
		for _, a := range f.alerts {
			if a.Archived != archived {
				continue
			}
			if level != "" && a.Level != level {
				continue
			}
			if module != "" && a.Module != module {
				continue
			}
			alerts = append(alerts, a)
		}
		f.mu.Unlock()
		writePage(w, r, alerts)
	}))
	mux.HandleFunc("GET "+site+"/events", f.authenticated(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		events := make([]omada.Event, len(f.events))
		copy(events, f.events)
		f.mu.Unlock()
		writePage(w, r, events)
	}))

	counted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		mux.ServeHTTP(w, r)
	})
	f.Server = httptest.NewTLSServer(counted)
	return f
}

// Host returns the host:port the client should be configured with.
func (f *FakeController) Host() string {
	return strings.TrimPrefix(f.Server.URL, "https://")
}

// RequestCount returns the number of HTTP requests received so far,
// discovery included.
func (f *FakeController) RequestCount() int64 { return f.requests.Load() }

// Close shuts the fake controller down.
func (f *FakeController) Close() { f.Server.Close() }

// SetClients replaces the client listing.
func (f *FakeController) SetClients(clients []omada.NetworkClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients = clients
}

// SetDevices replaces the device listing.
func (f *FakeController) SetDevices(devices []omada.Device) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.devices = devices
}

// SetAlerts replaces the alert listing.
func (f *FakeController) SetAlerts(alerts []omada.Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = alerts
}

// SetEvents replaces the event listing.
func (f *FakeController) SetEvents(events []omada.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = events
}

// Blocked reports whether the fake controller has the MAC marked blocked.
func (f *FakeController) Blocked(mac string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blocked[mac]
}

// LoggedIn reports whether the fake controller considers the session live.
func (f *FakeController) LoggedIn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loggedIn
}

func (f *FakeController) authorized(r *http.Request) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.loggedIn || r.Header.Get("Csrf-Token") != Token {
		return false
	}
	cookie, err := r.Cookie(sessionName)
	return err == nil && cookie.Value == sessionValue
}

func (f *FakeController) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeError(w, -1200, "login required")
			return
		}
		next(w, r)
	}
}

func (f *FakeController) handleLogin(w http.ResponseWriter, r *http.Request) {
	if f.LoginDelay > 0 {
		select {
		case <-time.After(f.LoginDelay):
		case <-r.Context().Done():
			return
		}
	}
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, -1000, "malformed login request")
		return
	}
	if creds.Username != Username || creds.Password != Password {
		writeError(w, -30109, "the username or password is wrong")
		return
	}
	f.mu.Lock()
	f.loggedIn = true
	f.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: sessionName, Value: sessionValue, Path: "/"})
	writeEnvelope(w, map[string]string{"token": Token})
}

func (f *FakeController) handleListClients(w http.ResponseWriter, r *http.Request) {
	if f.MalformedClients {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html>not json at all</html>")
		return
	}
	if f.MissingEnvelope {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"unexpected": true}`)
		return
	}
	f.mu.Lock()
	clients := make([]omada.NetworkClient, len(f.clients))
	copy(clients, f.clients)
	f.mu.Unlock()
	writePage(w, r, clients)
}

func (f *FakeController) findClient(mac string) (omada.NetworkClient, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.Mac == mac {
			return c, true
		}
	}
	return omada.NetworkClient{}, false
}

func (f *FakeController) handleGetClient(w http.ResponseWriter, r *http.Request) {
	c, ok := f.findClient(r.PathValue("mac"))
	if !ok {
		writeError(w, -33000, "client not found")
		return
	}
	writeEnvelope(w, c)
}

func (f *FakeController) handlePatchClient(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, -1000, "malformed patch")
		return
	}
	mac := r.PathValue("mac")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.clients {
		if f.clients[i].Mac == mac {
			if patch.Name != "" {
				f.clients[i].Name = patch.Name
			}
			writeEnvelope(w, nil)
			return
		}
	}
	writeError(w, -33000, "client not found")
}

func (f *FakeController) handleBlock(blocked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.blocked[r.PathValue("mac")] = blocked
		f.mu.Unlock()
		writeEnvelope(w, nil)
	}
}

func (f *FakeController) handleDeviceCmd(w http.ResponseWriter, r *http.Request) {
	mac := r.PathValue("mac")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.devices {
		if d.Mac == mac {
			writeEnvelope(w, nil)
			return
		}
	}
	writeError(w, -33000, "device not found")
}

func (f *FakeController) handleGetSwitch(w http.ResponseWriter, r *http.Request) {
	mac := r.PathValue("mac")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.devices {
		if d.Mac == mac && d.Type == "switch" {
			writeEnvelope(w, omada.Switch{Mac: d.Mac, Name: d.Name, Model: d.Model, IP: d.IP, Version: d.Version, PortNum: 8})
			return
		}
	}
	writeError(w, -33000, "switch not found")
}

func (f *FakeController) handleSwitchPorts(w http.ResponseWriter, r *http.Request) {
	mac := r.PathValue("mac")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.devices {
		if d.Mac == mac && d.Type == "switch" {
			ports := []omada.SwitchPort{
				{Port: 1, Name: "Port1", LinkStatus: 1, LinkSpeed: 1000},
				{Port: 2, Name: "Port2", LinkStatus: 0},
			}
			writeEnvelope(w, ports)
			return
		}
	}
	writeError(w, -33000, "switch not found")
}

func (f *FakeController) handleGetAccessPoint(w http.ResponseWriter, r *http.Request) {
	mac := r.PathValue("mac")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.devices {
		if d.Mac == mac && d.Type == "ap" {
			writeEnvelope(w, omada.AccessPoint{Mac: d.Mac, Name: d.Name, Model: d.Model, IP: d.IP, Version: d.Version})
			return
		}
	}
	writeError(w, -33000, "access point not found")
}

func writeEnvelope(w http.ResponseWriter, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	body := map[string]interface{}{"errorCode": 0, "msg": "Success."}
	if result != nil {
		body["result"] = result
	}
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"errorCode": code, "msg": msg})
}

// writePage slices rows into the requested page and wraps it in the paged
// listing shape.
func writePage[T any](w http.ResponseWriter, r *http.Request, rows []T) {
	page := queryInt(r.URL.Query(), "currentPage", 1)
	size := queryInt(r.URL.Query(), "currentPageSize", 10)

	start := (page - 1) * size
	if start > len(rows) {
		start = len(rows)
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}

	writeEnvelope(w, map[string]interface{}{
		"currentPage": page,
		"currentSize": size,
		"totalRows":   len(rows),
		"data":        rows[start:end],
	})
}

func queryInt(q url.Values, key string, fallback int) int {
	if v := q.Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
