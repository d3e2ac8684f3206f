// Package api is a service providing an HTTP REST API to read gateway state.
//
// The endpoints supported are:
//
// http://localhost:8723/devices - list of devices with their last event
//
// http://localhost:8723/devices/events - last event per device
//
// http://localhost:8723/query/{query} - query a service, e.g. http://localhost:8723/query/rfxcom/status
//
// http://localhost:8723/events/feed - continuous live stream of events (line delimited)
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/rfxgate/rfxgate/config"
	"github.com/rfxgate/rfxgate/pubsub"
	"github.com/rfxgate/rfxgate/services"
)

// Service api
type Service struct {
}

// ID of the service
func (service *Service) ID() string {
	return "api"
}

const statePrefix = "rfxgate/state/devices"

func errorResponse(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), 500)
}

func apiIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "text/html")
	fmt.Fprintf(w, "<html>rfxgate is listening</html>")
}

func jsonResponse(w http.ResponseWriter, obj interface{}) {
	w.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	err := enc.Encode(obj)
	if err != nil {
		errorResponse(w, err)
	}
}

func query(endpoint string, q string, w http.ResponseWriter) {
	w.Header().Add("Content-Type", "application/json; charset=utf-8")

	ch := services.QueryChannel(endpoint+" "+q, 100*time.Millisecond)

	for ev := range ch {
		fmt.Fprintf(w, ev.String()+"\r\n")
		w.(http.Flusher).Flush()
	}
}

func apiQuery(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Path[len("/query/"):]
	q := r.URL.Query().Get("q")
	query(endpoint, q, w)
}

type deviceAndState struct {
	config.DeviceConf
	State interface{} `json:"state"`
}

func getDevicesState() map[string]interface{} {
	// Get state from store
	ret := make(map[string]interface{})
	nodes, _ := services.Stor.GetRecursive(statePrefix)
	for _, node := range nodes {
		ev := pubsub.Parse(node.Value, "")
		if ev == nil {
			continue
		}
		name := node.Key[strings.LastIndex(node.Key, "/")+1:]
		ret[name] = ev.Map()
	}
	return ret
}

func apiDevices(w http.ResponseWriter, r *http.Request) {
	ret := make(map[string]deviceAndState)
	state := getDevicesState()

	for name, dev := range services.Config.Devices {
		ret[name] = deviceAndState{dev, state[name]}
	}

	jsonResponse(w, ret)
}

func apiDevicesEvents(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, getDevicesState())
}

func apiEventsFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topics := q.Get("topics")
	w.Header().Add("Content-Type", "application/json; boundary=NL")

	var subscription []pubsub.Topic
	if topics != "" {
		for _, topic := range strings.Split(topics, ",") {
			subscription = append(subscription, pubsub.Exact(topic))
		}
	} else {
		subscription = []pubsub.Topic{pubsub.All()}
	}
	ch := services.Subscriber.Subscribe(subscription...)
	defer services.Subscriber.Close(ch)

	for ev := range ch {
		data := ev.Map()
		device := services.Config.LookupDeviceName(ev)
		if device != "" {
			data["device"] = device
		}
		encoder := json.NewEncoder(w)
		err := encoder.Encode(data)
		if err != nil {
			break
		}
		w.Write([]byte("\r\n")) // separator
		w.(http.Flusher).Flush()
	}
}

// recordEvents keeps the last event per device in the store.
func recordEvents(ch <-chan *pubsub.Event) {
	for ev := range ch {
		if strings.HasPrefix(ev.Topic, "_") {
			continue
		}
		device := ev.Device()
		if device == "" {
			device = services.Config.LookupDeviceName(ev)
		}
		if device == "" {
			continue
		}
		services.Stor.Set(statePrefix+"/"+device, ev.String())
	}
}

func router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", apiIndex)
	router.HandleFunc("/devices", apiDevices)
	router.HandleFunc("/devices/events", apiDevicesEvents)
	router.PathPrefix("/query/").HandlerFunc(apiQuery)
	router.HandleFunc("/events/feed", apiEventsFeed)
	return router
}

func (service *Service) Run() error {
	go recordEvents(services.Subscriber.Subscribe(pubsub.All()))

	addr := services.Config.Endpoints.Api
	if addr == "" {
		addr = ":8723"
	}
	log.Println("Listening on", addr)
	return http.ListenAndServe(addr, router())
}
