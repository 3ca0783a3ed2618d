package runner

import (
	"github.com/projectdiscovery/gologger"
)

var banner = `
                      __          
  ___ ____  ___ _/ /__  ___ _ __ __
 / _ '/ _ \/ _ '/ / _ \/ _ '/ \ \ /
 \_,_/_//_/\_,_/_/\___/\_, / /_\_\ 
                      /___/        
`

var version = "v0.1.0"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tprojectdiscovery.io\n\n")
}
