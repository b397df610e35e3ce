package secret_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/catalog/alog"
	"github.com/go-arrower/catalog/secret"
)

const password = "p@ss/word"

type dbConfig struct {
	User     string        `json:"user"`
	Password secret.Secret `json:"password"`
}

func TestSecret_Secret(t *testing.T) {
	t.Parallel()

	assert.Equal(t, password, secret.New(password).Secret())
	assert.Empty(t, secret.Secret{}.Secret(), "zero value is empty")
}

func TestSecret_masked(t *testing.T) {
	t.Parallel()

	conf := dbConfig{User: "catalog", Password: secret.New(password)}

	tests := map[string]struct {
		print    func(buf *bytes.Buffer)
		expected string
	}{
		"print": {
			func(buf *bytes.Buffer) { fmt.Fprint(buf, conf.Password) },
			"******",
		},
		"print pointer": {
			func(buf *bytes.Buffer) { fmt.Fprint(buf, &conf.Password) },
			"******",
		},
		"print struct": {
			func(buf *bytes.Buffer) { fmt.Fprintf(buf, "%+v", conf) },
			"{User:catalog Password:******}",
		},
		"json": {
			func(buf *bytes.Buffer) { _ = json.NewEncoder(buf).Encode(conf) },
			`{"user":"catalog","password":"******"}` + "\n",
		},
		"log": {
			func(buf *bytes.Buffer) {
				logger := alog.New(alog.WithHandler(slog.NewJSONHandler(buf, &slog.HandlerOptions{ReplaceAttr: removeTime})))
				logger.Info("config", slog.Group("postgres", slog.Any("password", conf.Password)))
			},
			`{"level":"INFO","msg":"config","postgres":{"password":"******"}}` + "\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			tt.print(buf)

			assert.Equal(t, tt.expected, buf.String())
			assert.NotContains(t, buf.String(), password)
		})
	}
}

func TestSecret_reflection(t *testing.T) {
	t.Parallel()

	s := secret.New(password)
	value := reflect.ValueOf(s)

	assert.NotContains(t, value.String(), password)
	assert.Panics(t, func() { _ = value.Field(0).Interface() }, "unexported value can not be read")
}

func TestSecret_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	conf := dbConfig{}

	err := json.Unmarshal([]byte(`{"user":"catalog","password":"`+password+`"}`), &conf)
	require.NoError(t, err)
	assert.Equal(t, password, conf.Password.Secret())
	assert.Equal(t, "******", conf.Password.String())

	err = json.Unmarshal([]byte(`{"password":1}`), &conf)
	assert.Error(t, err)
}

func TestSecret_Text(t *testing.T) {
	t.Parallel()

	s := secret.New(password)

	data, err := s.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, []byte("******"), data)

	unmarshalled := secret.Secret{}
	err = unmarshalled.UnmarshalText([]byte(password))
	assert.NoError(t, err)
	assert.Equal(t, password, unmarshalled.Secret())
}

func Example() {
	conf := dbConfig{User: "catalog", Password: secret.New(password)}

	fmt.Println(conf.Password)
	fmt.Printf("%+v\n", conf)

	logger := alog.New(alog.WithHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{ReplaceAttr: removeTime})))
	logger.Info("connecting", slog.Any("password", conf.Password))

	fmt.Println(conf.Password.Secret())

	// Output:
	// ******
	// {User:catalog Password:******}
	// level=INFO msg=connecting password=******
	// p@ss/word
}

func removeTime(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.TimeKey {
		return slog.Attr{}
	}

	return attr
}
