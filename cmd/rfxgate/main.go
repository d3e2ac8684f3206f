package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rfxgate/rfxgate/services"
	"github.com/rfxgate/rfxgate/services/api"
	"github.com/rfxgate/rfxgate/services/datalogger"
	"github.com/rfxgate/rfxgate/services/rfxcom"
	"github.com/rfxgate/rfxgate/services/xpl"
)

func registerServices() {
	// register available services
	services.Register(&api.Service{})
	services.Register(&datalogger.Service{})
	services.Register(&rfxcom.Service{})
	services.Register(&xpl.Service{})
}

func usage() {
	fmt.Println("Usage: rfxgate COMMAND [SERVICE/ARGS]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("   config  filename...     Update config")
	fmt.Println("   run     service...      Run the given services")
	fmt.Println("   query   ...             Query services (eg. rfxcom/status)")
	fmt.Println()
}

func main() {
	log.SetOutput(os.Stdout)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	ps := []string{}
	if flag.NArg() > 1 {
		ps = flag.Args()[1:]
	}

	services.SetupLogging()

	command := flag.Args()[0]
	switch command {
	default:
		usage()
	case "config":
		if len(ps) < 1 {
			usage()
			return
		}
		updateConfig(ps)
	case "run":
		if len(ps) < 1 {
			usage()
			return
		}
		service(ps)
	case "query":
		if len(ps) < 1 {
			usage()
			return
		}
		query(strings.Join(ps, " "))
	}
}

func service(ss []string) {
	services.Setup("rfxgate")
	registerServices()
	services.Launch(ss)
	services.Shutdown()
}

func query(q string) {
	services.SetupBroker("rfxgate")
	defer services.Shutdown()
	events := services.Query(q, 1500*time.Millisecond)
	if len(events) == 0 {
		fmt.Println("No response")
		return
	}
	for _, ev := range events {
		fmt.Printf("%s: %s\n", ev.Source(), ev.StringField("message"))
	}
}
