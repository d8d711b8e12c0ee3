package shell

import (
	"embed"
	"errors"
	"io/fs"
)

//go:embed helptext
var helptext embed.FS

var helpTopics = []string{
	"lexicon", "new", "place", "rack", "gen", "play", "board", "cgp",
	"autoplay",
}

func usage() (string, error) {
	dat, err := helptext.ReadFile("helptext/usage.txt")
	if err != nil {
		return "", err
	}
	return string(dat), nil
}

func usageTopic(topic string) string {
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if errors.Is(err, fs.ErrNotExist) {
		return "There is no help text for the topic " + topic
	}
	if err != nil {
		return "Error loading helptext: " + err.Error()
	}
	return string(dat)
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		text, err := usage()
		if err != nil {
			return nil, err
		}
		return msg(text), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}
