package mqtt

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	MQTT "github.com/eclipse/paho.mqtt.golang"

	"github.com/rfxgate/rfxgate/pubsub"
)

// Client is the shared mqtt connection, available to services needing raw
// access to the broker.
var Client MQTT.Client

type Broker struct {
	broker     string
	client     MQTT.Client
	subscriber *Subscriber
}

func NewBroker(broker string, name string) *Broker {
	// generate a client id
	hostname, _ := os.Hostname()
	pid := os.Getpid()
	r := rand.Int()
	clientId := fmt.Sprintf("%s/%s-%d-%d", name, hostname, pid, r)

	self := &Broker{broker: broker}
	self.subscriber = NewSubscriber(self, false)

	opts := MQTT.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientId)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetDefaultPublishHandler(self.subscriber.publishHandler)
	opts.SetOnConnectHandler(self.subscriber.connectHandler)

	self.client = MQTT.NewClient(opts)
	if token := self.client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln("Couldn't connect to mqtt:", token.Error())
	}
	Client = self.client
	return self
}

func (self *Broker) Id() string {
	return "mqtt: " + self.broker
}

func (self *Broker) Subscriber() pubsub.Subscriber {
	return self.subscriber
}

func (self *Broker) Publisher() pubsub.Publisher {
	return &Publisher{broker: self.broker, client: self.client}
}
