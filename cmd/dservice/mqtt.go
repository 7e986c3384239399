/* Copyright 2026 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Comcast/dervish/util"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTCoupling connects the service to an MQTT broker.  Subscribed
// topics carry operations (as JSON), and each processed op is
// published back out.
type MQTTCoupling struct {
	Client               mqtt.Client
	Quiesce              uint
	SubTopics            string
	DefaultOutboundTopic string

	service *Service
}

func NewMQTTCoupling(args []string, s *Service) (*MQTTCoupling, *flag.FlagSet) {
	var (
		// Follow mosquitto_sub command line args.

		fs = flag.NewFlagSet("mq", flag.ExitOnError)

		broker    = fs.String("h", "tcp://localhost", "Broker hostname")
		clientId  = fs.String("i", "", "Client id")
		port      = fs.Int("p", 1883, "Broker port")
		keepAlive = fs.Int("k", 10, "Keep-alive in seconds")
		userName  = fs.String("u", "", "Username")
		password  = fs.String("P", "", "Password")
		reconnect = fs.Bool("reconnect", false, "Automatically attempt to reconnect")
		clean     = fs.Bool("c", true, "Clean session")
		quiesce   = fs.Int("quiesce", 100, "Disconnection quiescence (in milliseconds)")

		certFilename = fs.String("cert", "", "Optional cert filename")
		keyFilename  = fs.String("key", "", "Optional key filename")
		insecure     = fs.Bool("insecure", false, "Skip broker cert checking")

		subTopics = fs.String("t", "ops", "subscription topic(s)")

		defaultOutboundTopic = fs.String("def-outbound-topic", "results", "Default out-bound message topic")
	)

	if args == nil {
		return nil, fs
	}

	fs.Parse(args)

	mqtt.ERROR = log.New(os.Stderr, "mqtt.error", 0)

	opts := mqtt.NewClientOptions()

	*broker = fmt.Sprintf("%s:%d", *broker, *port)
	opts.AddBroker(*broker)
	opts.SetClientID(*clientId)
	opts.SetKeepAlive(time.Second * time.Duration(*keepAlive))

	opts.Username = *userName
	opts.Password = *password
	opts.AutoReconnect = *reconnect
	opts.CleanSession = *clean

	var certs []tls.Certificate
	if *keyFilename != "" {
		cert, err := tls.LoadX509KeyPair(*certFilename, *keyFilename)
		if err != nil {
			log.Fatal(err)
		}
		certs = []tls.Certificate{cert}
	}

	tlsConf := &tls.Config{
		InsecureSkipVerify: *insecure,
	}

	if certs != nil {
		tlsConf.Certificates = certs
	}

	opts.SetTLSConfig(tlsConf)

	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Printf("MQTT connection lost")
	}

	c := &MQTTCoupling{
		Quiesce:              uint(*quiesce),
		SubTopics:            *subTopics,
		DefaultOutboundTopic: *defaultOutboundTopic,
		service:              s,
	}

	opts.DefaultPublishHandler = func(client mqtt.Client, msg mqtt.Message) {
		c.inHandler(context.Background(), client, msg)
	}

	c.Client = mqtt.NewClient(opts)

	return c, fs
}

// inHandler is a Paho publish handler, which is used to handle
// messages sent to us from the MQTT broker due to our subscriptions.
//
// The payload should be a DOp as JSON, optionally with a "to" topic
// for the response.
func (c *MQTTCoupling) inHandler(ctx context.Context, client mqtt.Client, msg mqtt.Message) {
	util.Logf("incoming: %s %s", msg.Topic(), msg.Payload())

	payload := msg.Payload()

	to := c.DefaultOutboundTopic
	{
		var m map[string]interface{}
		if err := json.Unmarshal(payload, &m); err == nil {
			if t, have := m["to"]; have {
				if s, is := t.(string); is {
					to = s
				}
			}
		}
	}

	var op DOp
	if err := json.Unmarshal(payload, &op); err != nil {
		log.Printf("Couldn't JSON-parse payload: %s", payload)
		return
	}

	if err := op.Do(ctx, c.service); err != nil {
		log.Printf("op.Do error %v", err)
		// Conveyed via the op's err field.
	}

	js, err := json.Marshal(&op)
	if err != nil {
		log.Printf("Failed to marshal %#v", op)
		return
	}

	token := c.Client.Publish(to, 0, false, js)
	token.Wait()
	if err := token.Error(); err != nil {
		log.Printf("Publish error: %s", err)
	}
}

// Start creates the MQTT session.
func (c *MQTTCoupling) Start(ctx context.Context) error {
	log.Printf("Attempting to connect to broker")
	if token := c.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("Connected to broker")

	for _, topic := range strings.Split(c.SubTopics, ",") {
		topic, qos := parseTopic(topic)
		if topic == "" {
			continue
		}
		log.Printf("Subscribing to %s (%d)", topic, qos)
		if t := c.Client.Subscribe(topic, qos, nil); t.Wait() && t.Error() != nil {
			return t.Error()
		}
	}
	log.Printf("Coupling started")

	return nil
}

// Stop terminates the MQTT session.
func (c *MQTTCoupling) Stop(ctx context.Context) error {
	log.Printf("Disconnecting")
	c.Client.Disconnect(c.Quiesce)
	return nil
}

// parseTopic can extract QoS from a topic name of the form TOPIC:QOS.
func parseTopic(s string) (string, byte) {
	var topic string
	var qos byte
	if _, err := fmt.Sscanf(strings.Replace(s, ":", " ", 1), "%s %d", &topic, &qos); err != nil {
		return s, 0
	}
	return topic, qos
}
