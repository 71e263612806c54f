package mqtt

import (
	"fmt"
	"strings"
)

// Topic prefixes for the accml message bus.
//
// Device topics use the scheme: accml/device/{dev_id}/{property}/{verb}
// where verb is one of set, state, trigger.
const (
	// TopicPrefix is the base for all accml topics.
	TopicPrefix = "accml"

	// TopicPrefixDevice is the base for device property topics.
	TopicPrefixDevice = "accml/device"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "accml/system"
)

// Topics provides builders for accml MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	setTopic := topics.DeviceSet("QF1PC", "set_current")
//	// Returns: "accml/device/QF1PC/set_current/set"
type Topics struct{}

// DeviceSet returns the topic for setpoint commands to a device property.
//
// Example: accml/device/QF1PC/set_current/set
func (Topics) DeviceSet(devID, property string) string {
	return fmt.Sprintf("%s/%s/%s/set", TopicPrefixDevice, devID, property)
}

// DeviceState returns the topic a device publishes readbacks on.
//
// Example: accml/device/QF1PC/set_current/state
func (Topics) DeviceState(devID, property string) string {
	return fmt.Sprintf("%s/%s/%s/state", TopicPrefixDevice, devID, property)
}

// DeviceTrigger returns the topic for measurement trigger requests.
//
// Example: accml/device/tune/transversal/trigger
func (Topics) DeviceTrigger(devID, property string) string {
	return fmt.Sprintf("%s/%s/%s/trigger", TopicPrefixDevice, devID, property)
}

// SystemStatus returns the system status topic.
//
// Example: accml/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllDeviceStates returns a pattern matching every device readback.
//
// Pattern: accml/device/+/+/state
func (Topics) AllDeviceStates() string {
	return fmt.Sprintf("%s/+/+/state", TopicPrefixDevice)
}

// AllTopics returns a pattern matching all accml topics.
// Use with caution, this receives ALL traffic.
//
// Pattern: accml/#
func (Topics) AllTopics() string {
	return TopicPrefix + "/#"
}

// ParseDeviceState extracts the device and property from a state topic.
// Returns ok=false for topics outside the device state scheme.
func (Topics) ParseDeviceState(topic string) (devID, property string, ok bool) {
	rest, found := strings.CutPrefix(topic, TopicPrefixDevice+"/")
	if !found {
		return "", "", false
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[2] != "state" || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
