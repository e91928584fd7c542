package bot

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// fakeMessenger records every API call for assertions.
type fakeMessenger struct {
	mu     sync.Mutex
	nextID int
	calls  []apiCall
}

type apiCall struct {
	method    string
	channelID string
	messageID string
	emoji     string
	userID    string
	content   string
	files     int
}

func (f *fakeMessenger) record(c apiCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeMessenger) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	f.nextID++
	id := fmt.Sprintf("m%d", f.nextID)
	f.calls = append(f.calls, apiCall{method: "send", channelID: channelID, messageID: id, content: content})
	f.mu.Unlock()
	return &discordgo.Message{ID: id, ChannelID: channelID}, nil
}

func (f *fakeMessenger) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	f.nextID++
	id := fmt.Sprintf("m%d", f.nextID)
	f.calls = append(f.calls, apiCall{method: "sendComplex", channelID: channelID, messageID: id, content: data.Content, files: len(data.Files)})
	f.mu.Unlock()
	return &discordgo.Message{ID: id, ChannelID: channelID}, nil
}

func (f *fakeMessenger) ChannelMessageEdit(channelID, messageID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.record(apiCall{method: "edit", channelID: channelID, messageID: messageID, content: content})
	return &discordgo.Message{ID: messageID, ChannelID: channelID, Content: content}, nil
}

func (f *fakeMessenger) MessageReactionAdd(channelID, messageID, emojiID string, _ ...discordgo.RequestOption) error {
	f.record(apiCall{method: "reactionAdd", channelID: channelID, messageID: messageID, emoji: emojiID})
	return nil
}

func (f *fakeMessenger) MessageReactionRemove(channelID, messageID, emojiID, userID string, _ ...discordgo.RequestOption) error {
	f.record(apiCall{method: "reactionRemove", channelID: channelID, messageID: messageID, emoji: emojiID, userID: userID})
	return nil
}

func (f *fakeMessenger) MessageReactionsRemoveAll(channelID, messageID string, _ ...discordgo.RequestOption) error {
	f.record(apiCall{method: "reactionsRemoveAll", channelID: channelID, messageID: messageID})
	return nil
}

// byMethod returns all recorded calls with the given method.
func (f *fakeMessenger) byMethod(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

// lastEdit returns the content of the last edit of the given message.
func (f *fakeMessenger) lastEdit(messageID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].method == "edit" && f.calls[i].messageID == messageID {
			return f.calls[i].content
		}
	}
	return ""
}
