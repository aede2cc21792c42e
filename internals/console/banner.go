package console

const banner = `
 /$$$$$$$$       /$$$$$$                                                      /$$
|__  $$__/      /$$__  $$                                                    | $$
   | $$        | $$  \__/  /$$$$$$  /$$$$$$$  /$$    /$$ /$$$$$$   /$$$$$$  /$$$$$$
   | $$ /$$$$$$| $$       /$$__  $$| $$__  $$|  $$  /$$//$$__  $$ /$$__  $$|_  $$_/
   | $$|______/| $$      | $$  \ $$| $$  \ $$ \  $$/$$/| $$$$$$$$| $$  \__/  | $$
   | $$        | $$    $$| $$  | $$| $$  | $$  \  $$$/ | $$_____/| $$        | $$ /$$
   | $$        |  $$$$$$/|  $$$$$$/| $$  | $$   \  $/  |  $$$$$$$| $$        |  $$$$/
   |__/         \______/  \______/ |__/  |__/    \_/    \_______/|__/         \___/
`

const (
	titleLine   = "+========================================================================+"
	title       = "|-------------------T-Convert: Currency Converter-------------------------|"
	ruleLine    = "-----------------------------------------------------------------"
	goodbyeLine = "********************** THANK YOU FOR USING T-CONVERT! **********************"
)
