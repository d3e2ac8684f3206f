package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rfxgate/rfxgate/config"
	"github.com/rfxgate/rfxgate/pubsub"
	"github.com/rfxgate/rfxgate/services"
)

func updateConfig(filenames []string) {
	// concatenate files together
	data := &bytes.Buffer{}
	for _, filename := range filenames {
		f, err := os.Open(filename)
		if err != nil {
			fmt.Printf("Error opening %s: %s\n", filename, err)
			return
		}
		defer f.Close()
		_, err = io.Copy(data, f)
		if err != nil {
			fmt.Printf("Error reading %s: %s\n", filename, err)
			return
		}

		data.WriteByte('\n')
	}

	// check the config parses before publishing it
	if _, err := config.OpenRaw(data.Bytes()); err != nil {
		fmt.Printf("Invalid config: %s\n", err)
		return
	}

	// emit event
	fields := pubsub.Fields{
		"config": data.String(),
	}

	ev := pubsub.NewEvent("config", fields)
	ev.SetRetained(true) // config messages are retained
	services.SetupBroker("rfxgate")
	services.Publisher.Emit(ev)
	services.Shutdown()
	fmt.Printf("Updated config (%d bytes)\n", data.Len())
}
